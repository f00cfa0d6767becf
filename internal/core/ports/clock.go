package ports

import "time"

// Clock supplies the current time to commands and sweeps.
type Clock interface {
	Now() time.Time
}
