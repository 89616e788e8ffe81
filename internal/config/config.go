package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// NewViper maps "a.b_c" keys to A_B_C env vars.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	return v
}

// Load unmarshals env-backed settings into c. configure registers defaults;
// only keys with a default (or a bound flag) are picked up from env.
func Load[T any](c *T, configure func(v *viper.Viper)) (*T, error) {
	return LoadWithFlags(c, nil, nil, configure)
}

// LoadWithFlags is Load with changed flags taking precedence over env and
// defaults. keys maps config keys to flag names, e.g. "retry.max_retries" to
// "retries"; with nil keys every flag binds to the key of its own name.
func LoadWithFlags[T any](c *T, flags *pflag.FlagSet, keys map[string]string, configure func(v *viper.Viper)) (*T, error) {
	v := NewViper()

	configure(v)
	if flags != nil {
		if err := bindFlags(v, flags, keys); err != nil {
			return nil, err
		}
	}
	return c, v.Unmarshal(c)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	if keys == nil {
		return v.BindPFlags(flags)
	}
	for key, name := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			return errors.Errorf("flag --%s for %s is not defined", name, key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}
