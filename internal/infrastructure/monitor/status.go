package monitor

import "time"

type Status struct {
	MongoDB   bool      `json:"mongodb"`
	Redis     bool      `json:"redis"`
	LastCheck time.Time `json:"last_check"`
}
