package models

// Versioned is embedded by entities that use optimistic locking.
type Versioned struct {
	RowVersion int64 `json:"row_version"`
}

func (v *Versioned) GetRowVersion() int64 { return v.RowVersion }

func (v *Versioned) SetRowVersion(val int64) { v.RowVersion = val }
