package models

// ============================================================
// Design Record
// ============================================================

// Design сохраненный результат построения.
type Design struct {
	ID         string     `json:"id"`
	Unit       string     `json:"unit"`
	Parameters Parameters `json:"parameters"`
	Assembly   []byte     `json:"-"`
	NetVolume  float64    `json:"netVolume"`
	CreatedAt  string     `json:"created_at"`
}
