package nxbasic

import (
	"github.com/antibyte/nxterm/pkg/machine"
)

var voiceRange = [2]int{0, machine.NumVoices - 1}

// voiceArgs parses "v,[a],[b],..." where all values after the voice may
// be empty. Missing values are -1.
func (it *Interpreter) voiceArgs(ranges ...[2]int) ([]int, ErrorCode) {
	return it.evaluateOptionalArgs(append([][2]int{voiceRange}, ranges...)...)
}

// cmdSound: SOUND v,[wave],[pulse width],[length].
func (it *Interpreter) cmdSound() ErrorCode {
	it.pc++
	a, code := it.voiceArgs([2]int{0, 3}, [2]int{0, 15}, [2]int{0, 255})
	if code != ErrorNone {
		return code
	}
	if it.running() {
		v := a[0]
		if a[1] >= 0 {
			it.audioLib.setWave(v, a[1])
		}
		if a[2] >= 0 {
			it.audioLib.setPulseWidth(v, a[2])
		}
		if a[3] >= 0 {
			it.audioLib.setLength(v, a[3])
		}
	}
	return it.endOfCommand()
}

func (it *Interpreter) cmdSoundSource() ErrorCode {
	it.pc += 2
	a, code := it.evaluateInt(0, 0xFFFF)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.audioLib.sourceAddress = a
	}
	return it.endOfCommand()
}

// cmdVolume: VOLUME v,[volume],[mix].
func (it *Interpreter) cmdVolume() ErrorCode {
	it.pc++
	a, code := it.voiceArgs([2]int{0, 15}, [2]int{0, 3})
	if code != ErrorNone {
		return code
	}
	if it.running() {
		if a[1] >= 0 {
			it.audioLib.setVolume(a[0], a[1])
		}
		if a[2] >= 0 {
			it.audioLib.setMix(a[0], a[2])
		}
	}
	return it.endOfCommand()
}

// cmdEnvelope: ENVELOPE v,[attack],[decay],[sustain],[release].
func (it *Interpreter) cmdEnvelope() ErrorCode {
	it.pc++
	a, code := it.voiceArgs([2]int{0, 15}, [2]int{0, 15}, [2]int{0, 15}, [2]int{0, 15})
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.setNibbles(a[0], a[1:], voiceEnvAD, voiceEnvSR)
	}
	return it.endOfCommand()
}

// cmdLfo: LFO v,[rate],[frequency],[volume],[pulse width].
func (it *Interpreter) cmdLfo() ErrorCode {
	it.pc++
	a, code := it.voiceArgs([2]int{0, 15}, [2]int{0, 15}, [2]int{0, 15}, [2]int{0, 15})
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.setNibbles(a[0], a[1:], voiceLFO1, voiceLFO2)
	}
	return it.endOfCommand()
}

// setNibbles writes four optional values into the low and high nibbles
// of two registers.
func (it *Interpreter) setNibbles(v int, values []int, reg1, reg2 int) {
	regs := [4]int{reg1, reg1, reg2, reg2}
	for i, n := range values {
		if n >= 0 {
			it.audioLib.setNibble(v, regs[i], (i&1)*4, n)
		}
	}
}

// cmdPlay: PLAY v,pitch[,length] [SOUND n].
func (it *Interpreter) cmdPlay() ErrorCode {
	it.pc++
	v, code := it.evaluateInt(0, machine.NumVoices-1)
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return code
	}
	pitch, code := it.evaluateInt(0, 96)
	if code != ErrorNone {
		return code
	}
	length := -1
	if it.tokenType() == TokenComma {
		it.pc++
		if length, code = it.evaluateInt(0, 255); code != ErrorNone {
			return code
		}
	}
	sound := -1
	if it.tokenType() == TokenSOUND {
		it.pc++
		if sound, code = it.evaluateInt(0, 15); code != ErrorNone {
			return code
		}
	}
	if it.running() {
		it.audioLib.play(v, pitch, length, sound)
		if sound >= 0 {
			it.cycles += soundSize
		}
	}
	return it.endOfCommand()
}

// cmdStop: STOP [v] releases one or all voices.
func (it *Interpreter) cmdStop() ErrorCode {
	it.pc++
	v, present, code := it.evaluateOptionalInt(0, machine.NumVoices-1)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		if !present {
			v = -1
		}
		it.audioLib.stop(v)
	}
	return it.endOfCommand()
}
