package models

// StorageBlob holds one serialized collection under a fixed key. The cell
// directory keeps its whole record set as a single JSON array in one row,
// overwritten wholesale on every mutation.
type StorageBlob struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value []byte `gorm:"type:bytea" json:"value"`
}
