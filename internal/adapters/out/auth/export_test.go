package auth

import "time"

func (p *Provider) SetClock(now func() time.Time) {
	p.now = now
}
