package recordstore

// KeyedRecord is implemented by every record type a Store can hold.
// RecordKey derives the lookup key from the record's own fields. Keys are
// compared for equality only and need not be unique across records.
type KeyedRecord interface {
	RecordKey() string
}
