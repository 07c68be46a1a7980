package main

import "math"

type ParamID uint8

const (
	ParamBitcrush ParamID = iota
	ParamDetune
	ParamType1
	ParamType2
	ParamLevel1
	ParamLevel2

	NumParams
)

// ParamInvalid is what Param returns for an id the unit does not know.
const ParamInvalid int32 = math.MinInt32

type ParamType uint8

const (
	ParamTypeNone ParamType = iota
	ParamTypePercent
	ParamTypeDB
	ParamTypeCents
	ParamTypeStrings
)

// ParamDesc is one row of the unit's parameter table.
type ParamDesc struct {
	Min, Max, Center, Default int32
	Type                      ParamType
	Name                      string
}

func (d ParamDesc) Clamp(v int32) int32 {
	return max(d.Min, min(v, d.Max))
}

var paramTable = [NumParams]ParamDesc{
	ParamBitcrush: {Min: 0, Max: 1023, Type: ParamTypeNone, Name: "SHPE"},
	ParamDetune:   {Min: 0, Max: 15, Type: ParamTypeCents, Name: "D3TN"},
	ParamType1:    {Min: 0, Max: int32(numWaveforms) - 1, Default: int32(WaveSine), Type: ParamTypeStrings, Name: "TYP1"},
	ParamType2:    {Min: 0, Max: int32(numWaveforms) - 1, Default: int32(WaveSine), Type: ParamTypeStrings, Name: "TYP2"},
	ParamLevel1:   {Min: 0, Max: MaxLevel, Default: MaxLevel, Type: ParamTypeDB, Name: "LVL1"},
	ParamLevel2:   {Min: 0, Max: MaxLevel, Default: MaxLevel, Type: ParamTypeDB, Name: "LVL2"},
}

// Desc returns the table entry for id.
func (id ParamID) Desc() (ParamDesc, bool) {
	if id >= NumParams {
		return ParamDesc{}, false
	}
	return paramTable[id], true
}

var waveformLabels = [numWaveforms]string{
	WaveSine:   "SIN",
	WaveSaw:    "SAW",
	WaveSquare: "SQR",
	WaveOff:    "OFF",
}

func (w Waveform) String() string {
	if w < numWaveforms {
		return waveformLabels[w]
	}
	return "OFF"
}

// WaveformFromValue maps a TYP parameter value to a waveform. Anything
// outside the table is Off.
func WaveformFromValue(v int32) Waveform {
	if v < 0 || v >= int32(numWaveforms) {
		return WaveOff
	}
	return Waveform(v)
}

// Header identifies the unit to the runtime.
type Header struct {
	Target  uint16
	API     uint32
	DevID   uint32
	UnitID  uint32
	Version uint32
	Name    string
	Params  []ParamDesc
}

const (
	TargetPlatform  uint16 = 0x0500
	TargetModuleOsc uint16 = 0x0002

	APIVersion uint32 = 0x00020000

	devID       = 0x46b
	unitVersion = 0x00010000
)

var UnitHeader = Header{
	Target:  TargetPlatform | TargetModuleOsc,
	API:     APIVersion,
	DevID:   devID,
	UnitID:  0,
	Version: unitVersion,
	Name:    "r4bb1t",
	Params:  paramTable[:],
}

const (
	apiMajorMask uint32 = 0x7FFF0000
	apiMinorMask uint32 = 0x0000FF00
)

// apiCompatible reports whether a runtime API version can host this unit:
// same major, runtime minor no newer than ours.
func apiCompatible(api uint32) bool {
	return api&apiMajorMask == APIVersion&apiMajorMask &&
		api&apiMinorMask <= APIVersion&apiMinorMask
}

// Param10BitToFloat maps 0..1023 onto 0..1.
func Param10BitToFloat(v int32) float32 {
	return float32(v) / 1023
}

// ParamFloatTo10Bit is the inverse of Param10BitToFloat on the 10-bit grid.
func ParamFloatTo10Bit(f float32) int32 {
	return int32(math.Round(float64(f) * 1023))
}
