package secret

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"docker-up/core/mapper"
	"docker-up/core/resource"
	"docker-up/core/utils"
)

// Descriptor is the secret resource kind. Only labels may change on update.
var Descriptor = resource.Descriptor{
	Name:      "secret",
	HasUpdate: true,
	IDField:   "ID",
}

// ErrNoData is returned for a secret declaring neither data nor file.
var ErrNoData = errors.New("secret requires data or file")

// Mapper converts stack secrets.
type Mapper struct {
	// ReadFile loads file-backed secrets. Defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// FromConfig implements mapper.Mapper.
func (m Mapper) FromConfig(d mapper.Declared) (resource.Document, error) {
	return mapper.PopulateFields(map[string]mapper.Field{
		"Name":   mapper.NamespacedName(),
		"Labels": mapper.NamespacedLabels("labels"),
		"Data":   m.data,
	})(d)
}

var fromInspect = mapper.PickFields(map[string]string{
	"Name":   "Spec.Name",
	"Labels": "Spec.Labels",
})

// FromInspect implements mapper.Mapper.
func (Mapper) FromInspect(state resource.Document) resource.Document {
	return fromInspect(state)
}

// WriteOnlyFields implements mapper.WriteOnly.
func (Mapper) WriteOnlyFields() []string {
	return []string{"Data"}
}

func (m Mapper) data(d mapper.Declared) (any, error) {
	if inline := d.Get("data"); inline != nil {
		return base64.StdEncoding.EncodeToString([]byte(utils.ToString(inline))), nil
	}

	file := utils.ToString(d.Get("file"))
	if file == "" {
		return nil, ErrNoData
	}
	read := m.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	content, err := read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret file: %w", err)
	}
	return base64.StdEncoding.EncodeToString(content), nil
}
