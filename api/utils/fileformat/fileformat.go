package fileformat

import (
	"path"

	"github.com/twinj/uuid"
)

// UniqueFormat derives a collision-free storage name for an uploaded file,
// keeping its original extension.
func UniqueFormat(fileName string) string {
	ext := path.Ext(fileName)
	u := uuid.NewV4()
	return u.String() + ext
}
