package game

// CollisionReport summarises one resolution pass
type CollisionReport struct {
	// Hits counts confirmed hits taken by each team's player
	Hits [2]int
	// Intercepts counts bullet pairs that destroyed each other
	Intercepts int
}

// Any reports whether anything collided
func (r CollisionReport) Any() bool {
	return r.Hits[TeamA] > 0 || r.Hits[TeamB] > 0 || r.Intercepts > 0
}

// CollisionSystem resolves hits between the two teams
type CollisionSystem struct {
	hitDistance int
	damage      int
}

// NewCollisionSystem creates a collision system
func NewCollisionSystem(cfg Config) *CollisionSystem {
	return &CollisionSystem{
		hitDistance: cfg.HitDistance,
		damage:      cfg.Damage,
	}
}

// Hittables collects a team's player and its active bullets
func Hittables(player *Player, bullets []*Bullet) []Actor {
	actors := make([]Actor, 0, len(bullets)+1)
	actors = append(actors, PlayerActor(player))
	for _, b := range bullets {
		if b.Active {
			actors = append(actors, BulletActor(b))
		}
	}
	return actors
}

// Resolve checks every cross-team pair. Hittability is re-checked per pair, so an
// entity disabled earlier in the pass never collides again.
func (c *CollisionSystem) Resolve(teamA, teamB []Actor, health *TeamHealth) CollisionReport {
	var report CollisionReport
	for _, a := range teamA {
		for _, b := range teamB {
			if !a.Hittable() {
				break
			}
			if !b.Hittable() {
				continue
			}
			if a.Position().Manhattan(b.Position()) > c.hitDistance {
				continue
			}
			c.HandleCollision(a, b, health, &report)
		}
	}
	return report
}

// HandleCollision applies the outcome of two entities touching
func (c *CollisionSystem) HandleCollision(a, b Actor, health *TeamHealth, report *CollisionReport) {
	switch {
	case a.Kind == KindBullet && b.Kind == KindBullet:
		a.Bullet.Disable()
		b.Bullet.Disable()
		report.Intercepts++
	case a.Kind == KindPlayer && b.Kind == KindBullet:
		c.hitPlayer(a.Player, b.Bullet, health, report)
	case a.Kind == KindBullet && b.Kind == KindPlayer:
		c.hitPlayer(b.Player, a.Bullet, health, report)
	default:
		// players pass through each other
	}
}

func (c *CollisionSystem) hitPlayer(p *Player, b *Bullet, health *TeamHealth, report *CollisionReport) {
	health.Damage(p.team, c.damage)
	b.Disable()
	report.Hits[p.team]++
}
