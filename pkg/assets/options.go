package assets

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// DecodeOptions decodes a raw options map (usually coming from the
// configuration file) into the given options struct.
func DecodeOptions(sourceType Type, options any, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         nil,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(mapstructure.StringToTimeDurationHookFunc()),
		Result:           result,
	})
	if err != nil {
		return errors.Wrapf(err, "could not create '%s' assets options decoder", sourceType)
	}

	if err := decoder.Decode(options); err != nil {
		return errors.Wrapf(err, "could not parse '%s' assets options", sourceType)
	}

	return nil
}
