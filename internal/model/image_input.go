package model

import (
	"encoding/json"
	"fmt"
)

// ImageInput is the wire form of an attached image. Clients send either a
// bare string (a data URI to upload, or an already-hosted URL) or an object
// carrying the hosted URL and external ID.
type ImageInput struct {
	// Raw holds the string form; empty when the client sent an object.
	Raw        string
	URL        string
	ExternalID string
}

func (i *ImageInput) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*i = ImageInput{Raw: s}
		return nil
	}
	var obj struct {
		URL        string `json:"url"`
		ExternalID string `json:"externalId"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("%w: image must be a string or an object", ErrValidation)
	}
	*i = ImageInput{URL: obj.URL, ExternalID: obj.ExternalID}
	return nil
}

func (i ImageInput) MarshalJSON() ([]byte, error) {
	if i.Raw != "" {
		return json.Marshal(i.Raw)
	}
	return json.Marshal(Image{URL: i.URL, ExternalID: i.ExternalID})
}
