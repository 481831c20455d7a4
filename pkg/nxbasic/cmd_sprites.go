package nxbasic

import (
	"github.com/antibyte/nxterm/pkg/machine"
)

// cmdSprite handles SPRITE n,[x],[y],[c] and SPRITE n followed by
// PAL, FLIP, PRIO and SIZE modifiers. Positions are stored with the
// sprite offset added.
func (it *Interpreter) cmdSprite() ErrorCode {
	it.pc++
	n, code := it.evaluateInt(0, machine.NumSprites-1)
	if code != ErrorNone {
		return code
	}

	if it.tokenType() != TokenComma {
		change, code := it.evaluateAttrChange(true)
		if code != ErrorNone {
			return code
		}
		if change.empty() {
			return ErrorExpectedComma
		}
		if it.running() {
			s := it.m.Sprite(n)
			s.Attr = change.apply(s.Attr)
			it.m.SetSprite(n, s)
		}
		return it.endOfCommand()
	}

	// x, y and c may each be left empty
	values := [3]float32{}
	present := [3]bool{}
	for i := range values {
		if it.tokenType() != TokenComma {
			if i == 0 {
				return ErrorExpectedComma
			}
			break
		}
		it.pc++
		if t := it.tokenType(); t == TokenComma || isEndOfCommand(t) {
			continue
		}
		if i == 2 {
			c, code := it.evaluateInt(0, machine.NumCharacters-1)
			if code != ErrorNone {
				return code
			}
			values[i] = float32(c)
		} else {
			f, code := it.evaluateNumber()
			if code != ErrorNone {
				return code
			}
			values[i] = f
		}
		present[i] = true
	}

	if it.running() {
		s := it.m.Sprite(n)
		if present[0] {
			s.X = byte(int(values[0]) + machine.SpriteOffset)
		}
		if present[1] {
			s.Y = byte(int(values[1]) + machine.SpriteOffset)
		}
		if present[2] {
			s.Character = byte(values[2])
		}
		it.m.SetSprite(n, s)
	}
	return it.endOfCommand()
}

// cmdSpriteOff hides one or all sprites by moving them off screen.
func (it *Interpreter) cmdSpriteOff() ErrorCode {
	it.pc += 2
	n, present, code := it.evaluateOptionalInt(0, machine.NumSprites-1)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		from, to := 0, machine.NumSprites-1
		if present {
			from, to = n, n
		}
		for i := from; i <= to; i++ {
			s := it.m.Sprite(i)
			s.X, s.Y = 0, 0
			it.m.SetSprite(i, s)
		}
	}
	return it.endOfCommand()
}
