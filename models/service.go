package models

// Service is one priced offering of the laundry, e.g. wash & fold.
type Service struct {
	ID        uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string  `json:"name" gorm:"not null"`
	Category  string  `json:"category" gorm:"not null"`
	BasePrice float64 `json:"base_price" gorm:"type:decimal(10,2);not null"`
	Unit      string  `json:"unit" gorm:"not null"`
	IsActive  bool    `json:"is_active"`
}

const (
	DefaultCategory = "General"
	DefaultUnit     = "piece"
)

// ApplyDefaults fills the optional text fields left empty by the client.
func (s *Service) ApplyDefaults() {
	if s.Category == "" {
		s.Category = DefaultCategory
	}
	if s.Unit == "" {
		s.Unit = DefaultUnit
	}
}
