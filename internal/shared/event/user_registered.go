package event

const UserRegisteredDestination string = "user_registered"

type UserRegisteredMessage struct {
	UserID     int64  `json:"user_id"`
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Email      string `json:"email"`
	City       string `json:"city"`
	ZipCode    string `json:"zip_code"`
	Birth      string `json:"birth"`
	Registered int64  `json:"registered_at"`
}
