package main

import "fmt"

// keyField names the field RecordKey reads. It is set from --key-field
// before any store is opened.
var keyField = defaultKeyField

// entry is a free-form record; its key is the value of keyField.
type entry map[string]any

func (e entry) RecordKey() string {
	v, ok := e[keyField]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
