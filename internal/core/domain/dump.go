package domain

import "time"

// CollectionDump holds one collection's exported contents. Contents entries
// are define-shaped documents suitable for restore.
type CollectionDump struct {
	Name     string `json:"name" bson:"name"`
	Contents []Doc  `json:"contents" bson:"contents"`
}

// DatabaseDump is the full export format: collections sorted by name,
// wrapped with the export timestamp.
type DatabaseDump struct {
	Timestamp   time.Time        `json:"timestamp" bson:"timestamp"`
	Collections []CollectionDump `json:"collections" bson:"collections"`
}

// Definitions returns the contents recorded for the named collection, or an
// empty slice when the dump carries no entry for it.
func (d DatabaseDump) Definitions(collectionName string) []Doc {
	for _, c := range d.Collections {
		if c.Name == collectionName {
			return c.Contents
		}
	}
	return nil
}
