package nxbasic

import (
	"math"

	"github.com/antibyte/nxterm/pkg/machine"
)

// Voice register offsets and bits.
const (
	voiceFreqLo = iota
	voiceFreqHi
	voiceStatus
	voiceVolume
	voiceAttr
	voiceLength
	voiceEnvAD
	voiceEnvSR
	voiceLFO1
	voiceLFO2

	voiceSoundOffset = voiceAttr
	soundSize        = 8
)

const (
	statusInit = 0x01
	statusGate = 0x02

	attrTimeout = 0x40
)

// AudioLib writes the voice registers for PLAY, STOP and the sound
// commands and counts down note lengths once per frame.
type AudioLib struct {
	m             *machine.Machine
	sourceAddress int
}

func (lib *AudioLib) init(m *machine.Machine) {
	lib.m = m
	lib.reset()
}

func (lib *AudioLib) reset() {
	lib.sourceAddress = 0
}

func voiceAddr(v, reg int) int {
	return machine.AudioRegsAddr + v*machine.VoiceSize + reg
}

func (lib *AudioLib) get(v, reg int) byte {
	return lib.m.Voice(v)[reg]
}

// set goes through Poke so the machine notices that audio is used.
func (lib *AudioLib) set(v, reg int, b byte) {
	lib.m.Poke(voiceAddr(v, reg), b)
}

// setNibble replaces the low (shift 0) or high (shift 4) nibble.
func (lib *AudioLib) setNibble(v, reg, shift, value int) {
	b := lib.get(v, reg)&^(0x0F<<shift) | byte(value&0x0F)<<shift
	lib.set(v, reg, b)
}

func (lib *AudioLib) setWave(v, wave int) {
	b := lib.get(v, voiceAttr)&^0x30 | byte(wave&0x03)<<4
	lib.set(v, voiceAttr, b)
}

func (lib *AudioLib) setPulseWidth(v, pw int) { lib.setNibble(v, voiceAttr, 0, pw) }

func (lib *AudioLib) setLength(v, length int) {
	lib.set(v, voiceLength, byte(length))
	attr := lib.get(v, voiceAttr) &^ attrTimeout
	if length > 0 {
		attr |= attrTimeout
	}
	lib.set(v, voiceAttr, attr)
}

func (lib *AudioLib) setVolume(v, vol int) { lib.setNibble(v, voiceVolume, 0, vol) }

func (lib *AudioLib) setMix(v, mix int) {
	b := lib.get(v, voiceVolume)&^0xC0 | byte(mix&0x03)<<6
	lib.set(v, voiceVolume, b)
}

// setPitch converts a note number (58 = A4, 440 Hz) into the frequency
// register, which holds 16 times the frequency in Hz.
func (lib *AudioLib) setPitch(v, pitch int) {
	f := int(16 * 440 * math.Pow(2, float64(pitch-58)/12))
	lib.set(v, voiceFreqLo, byte(f))
	lib.set(v, voiceFreqHi, byte(f>>8))
}

// copySound copies sound n of the sound source into the attribute,
// envelope and LFO registers of the voice.
func (lib *AudioLib) copySound(sound, v int) {
	src := lib.sourceAddress + sound*soundSize
	for i := 0; i < soundSize; i++ {
		b, _ := lib.m.Peek(src + i)
		lib.set(v, voiceSoundOffset+i, b)
	}
}

// play starts a note. length and sound are -1 when not given.
func (lib *AudioLib) play(v, pitch, length, sound int) {
	if sound >= 0 {
		lib.copySound(sound, v)
	}
	lib.setPitch(v, pitch)
	if length >= 0 {
		lib.setLength(v, length)
	}
	lib.set(v, voiceStatus, lib.get(v, voiceStatus)|statusInit|statusGate)
}

// stop releases the gate of one voice, or of all voices for v < 0.
func (lib *AudioLib) stop(v int) {
	for i := 0; i < machine.NumVoices; i++ {
		if v < 0 || v == i {
			lib.set(i, voiceStatus, lib.get(i, voiceStatus)&^statusGate)
		}
	}
}

// frameUpdate clears the init flags and counts down timed notes.
func (lib *AudioLib) frameUpdate() {
	for i := 0; i < machine.NumVoices; i++ {
		regs := lib.m.Voice(i)
		regs[voiceStatus] &^= statusInit
		if regs[voiceStatus]&statusGate == 0 || regs[voiceAttr]&attrTimeout == 0 {
			continue
		}
		if regs[voiceLength] > 0 {
			regs[voiceLength]--
		}
		if regs[voiceLength] == 0 {
			regs[voiceStatus] &^= statusGate
		}
	}
}
