package types

// PersonID identifies a person record. IDs are assigned by the repository
// as an auto-incrementing counter.
type PersonID int64

// GiftID identifies a gift record.
type GiftID int64
