package entity

import (
	"strconv"
	"time"
)

// User is a registered person. Every field passed the registration rules
// before the record was created.
type User struct {
	ID        int64     `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	City      string    `json:"city"`
	ZipCode   string    `json:"zip_code"`
	Birth     time.Time `json:"birth"`
	CreatedAt time.Time `json:"created_at"`
}

// CSVHeader is the column order of CSVRecord.
func CSVHeader() []string {
	return []string{"id", "firstname", "lastname", "email", "city", "zip_code", "birth", "created_at"}
}

// CSVRecord returns the user as one CSV row.
func (u User) CSVRecord() []string {
	return []string{
		strconv.FormatInt(u.ID, 10),
		u.Firstname,
		u.Lastname,
		u.Email,
		u.City,
		u.ZipCode,
		u.Birth.Format(time.DateOnly),
		u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
