package slmsim

import "fmt"

// SetImage32 always fails: the device only accepts 8-bit samples.
func (d *Dev) SetImage32(pixels []uint32) error {
	return fmt.Errorf("%w: SetImage32", ErrUnsupported)
}

// SetPixelsToRGB always fails: the device is grayscale.
func (d *Dev) SetPixelsToRGB(r, g, b uint8) error {
	return fmt.Errorf("%w: SetPixelsToRGB", ErrUnsupported)
}

// IsSequenceable returns false. Frame sequences are not supported.
func (d *Dev) IsSequenceable() bool {
	return false
}

// SequenceMaxLength always fails.
func (d *Dev) SequenceMaxLength() (int, error) {
	return 0, fmt.Errorf("%w: SequenceMaxLength", ErrUnsupported)
}

// StartSequence always fails.
func (d *Dev) StartSequence() error {
	return fmt.Errorf("%w: StartSequence", ErrUnsupported)
}

// StopSequence always fails.
func (d *Dev) StopSequence() error {
	return fmt.Errorf("%w: StopSequence", ErrUnsupported)
}

// ClearSequence always fails.
func (d *Dev) ClearSequence() error {
	return fmt.Errorf("%w: ClearSequence", ErrUnsupported)
}

// AddToSequence always fails.
func (d *Dev) AddToSequence(raw []byte) error {
	return fmt.Errorf("%w: AddToSequence", ErrUnsupported)
}

// SendSequence always fails.
func (d *Dev) SendSequence() error {
	return fmt.Errorf("%w: SendSequence", ErrUnsupported)
}
