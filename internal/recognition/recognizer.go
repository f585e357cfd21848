// Package recognition is the image-to-text boundary. Providers are treated
// as black boxes: they take a receipt image and return the raw printed text,
// which the receipt parser then structures.
package recognition

// Recognizer defines the interface for receipt text recognition
type Recognizer interface {
	// RecognizeText transcribes the text printed on a receipt image/PDF
	RecognizeText(imageData []byte, contentType string) (string, error)
	// Close releases provider resources
	Close() error
}

// Noop is a Recognizer that recognizes nothing. It backs the manual-entry
// mode: every scan degrades to an empty parse and the user fills the form in.
type Noop struct{}

func (Noop) RecognizeText(imageData []byte, contentType string) (string, error) {
	return "", nil
}

func (Noop) Close() error {
	return nil
}
