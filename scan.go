package argparse

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Scan converts value to the type pointed to by target. The target must be a
// pointer to a string, a bool, a time.Duration, or one of the numeric types
// supported by the Parse* functions of the strconv package. Integers accept
// the base prefixes of strconv.ParseInt ("0x", "0o", "0b").
//
// The parser never calls Scan: converting a value is up to the caller.
func Scan(value string, target interface{}) error {
	if reflect.ValueOf(target).Kind() != reflect.Ptr {
		return fmt.Errorf(`target for value "%s" is not a pointer`, value)
	}
	if d, ok := target.(*time.Duration); ok {
		v, err := time.ParseDuration(value)
		if err == nil {
			*d = v
		}
		return err
	}
	var (
		b   bool
		i   int64
		u   uint64
		f   float64
		err error
	)
	v := reflect.Indirect(reflect.ValueOf(target))
	switch v.Kind() {
	case reflect.String:
		v.SetString(value)
	case reflect.Bool:
		if b, err = strconv.ParseBool(value); err == nil {
			v.SetBool(b)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i, err = strconv.ParseInt(value, 0, v.Type().Bits()); err == nil {
			v.SetInt(i)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if u, err = strconv.ParseUint(value, 0, v.Type().Bits()); err == nil {
			v.SetUint(u)
		}
	case reflect.Float32, reflect.Float64:
		if f, err = strconv.ParseFloat(value, v.Type().Bits()); err == nil {
			v.SetFloat(f)
		}
	default:
		err = fmt.Errorf(`target for value "%s" has unsupported type %v`, value, v.Type())
	}
	return err
}
