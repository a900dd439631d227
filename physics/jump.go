package physics

// Jump runs the jump state machine after a step's contacts are known.
//
// A jump fires when the up key is held, the body is not locked and it is
// resting on something this step. Holding the key keeps the body locked so it
// cannot jump again until the key is released while grounded.
func Jump(body Body, keys KeyReader, res Resolution, t Timing) Body {
	up := keys.Pressed(body.Keys.Up)
	grounded := res.Grounded()

	body.Jumped = false

	if up && !body.Locked && grounded {
		body.Locked = true
		body.Jumped = true
	}

	if !up && body.Locked && grounded {
		body.Locked = false
	}

	if body.Jumped {
		body.Velocity.Y -= body.Impulse.Jump * t.Ratio()
	}

	return body
}
