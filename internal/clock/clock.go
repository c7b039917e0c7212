package clock

import "time"

// Clock is the time source used to stamp ventas and to resolve "today".
type Clock interface {
	Now() time.Time
}

type zoned struct {
	loc *time.Location
}

// InLocation returns a Clock reading the system time converted to loc.
func InLocation(loc *time.Location) Clock {
	return zoned{loc: loc}
}

func (z zoned) Now() time.Time {
	return time.Now().In(z.loc)
}

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
