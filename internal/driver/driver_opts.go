package driver

import "time"

type RealmDriverOpt func(*RealmDriver)

func WithTickLength(tickLength time.Duration) RealmDriverOpt {
	return func(d *RealmDriver) {
		d.tickLength = tickLength
	}
}
