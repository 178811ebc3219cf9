package schema

import (
	"fmt"
	"reflect"
	"slices"

	"zcbor.dev/go"
)

// Decode reads into dst using reflection, driven by "zcbor" struct tags.
// dst must be a non-nil pointer.
func Decode(s *zcbor.State, dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("schema: Decode requires a non-nil pointer, got %T", dst)
	}
	return decodeValue(s, v.Elem(), FieldParameters{})
}

func decodeValue(s *zcbor.State, v reflect.Value, p FieldParameters) error {
	if p.HasTag {
		if err := s.ExpectTag(zcbor.Tag(p.Tag)); err != nil {
			return err
		}
	}
	switch v.Kind() {
	case reflect.Bool:
		b, err := s.BoolDecode()
		if err != nil {
			return err
		}
		v.SetBool(b)
		return nil
	case reflect.String:
		str, err := s.TstrDecode()
		if err != nil {
			return err
		}
		if len(p.Choices) > 0 && !slices.Contains(p.Choices, str.String()) {
			return s.Fail(zcbor.KindWrongValue)
		}
		v.SetString(str.String())
		return nil
	case reflect.Int8:
		n, err := s.Int8Decode()
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
		return nil
	case reflect.Int16:
		n, err := s.Int16Decode()
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
		return nil
	case reflect.Int32:
		n, err := s.Int32Decode()
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
		return nil
	case reflect.Int, reflect.Int64:
		n, err := s.Int64Decode()
		if err != nil {
			return err
		}
		v.SetInt(n)
		return nil
	case reflect.Uint8:
		n, err := s.Uint8Decode()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
		return nil
	case reflect.Uint16:
		n, err := s.Uint16Decode()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
		return nil
	case reflect.Uint32:
		n, err := s.Uint32Decode()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
		return nil
	case reflect.Uint, reflect.Uint64:
		n, err := s.Uint64Decode()
		if err != nil {
			return err
		}
		v.SetUint(n)
		return nil
	case reflect.Float32:
		f, err := s.Float32Decode()
		if err != nil {
			return err
		}
		v.SetFloat(float64(f))
		return nil
	case reflect.Float64:
		f, err := s.Float64Decode()
		if err != nil {
			return err
		}
		v.SetFloat(f)
		return nil
	case reflect.Ptr:
		return decodePointer(s, v, p)
	case reflect.Slice:
		return decodeSlice(s, v, p)
	case reflect.Struct:
		return decodeStruct(s, v)
	default:
		return fmt.Errorf("schema: unsupported kind %s", v.Kind())
	}
}

func decodePointer(s *zcbor.State, v reflect.Value, p FieldParameters) error {
	if p.Optional {
		present := true
		err := s.ErrorScope(func() error { return s.NilExpect() })
		if err == nil {
			present = false
		}
		if !present {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
	}
	elem := reflect.New(v.Type().Elem())
	if err := decodeValue(s, elem.Elem(), FieldParameters{}); err != nil {
		return err
	}
	v.Set(elem)
	return nil
}

func decodeSlice(s *zcbor.State, v reflect.Value, p FieldParameters) error {
	if err := s.ListStartDecode(); err != nil {
		return err
	}
	elemType := v.Type().Elem()
	max := p.Max
	if max == 0 {
		max = 1 << 16
	}
	out := make([]reflect.Value, 0, min(max, 8))
	for len(out) < max {
		elem := reflect.New(elemType).Elem()
		if err := decodeValue(s, elem, FieldParameters{}); err != nil {
			break
		}
		out = append(out, elem)
	}
	if len(out) < p.Min {
		err := s.Fail(zcbor.KindLowElemCount)
		s.ListMapEndForceDecode()
		return err
	}
	if err := s.ListEndDecode(); err != nil {
		s.ListMapEndForceDecode()
		return err
	}
	result := reflect.MakeSlice(v.Type(), len(out), len(out))
	for i, e := range out {
		result.Index(i).Set(e)
	}
	v.Set(result)
	return nil
}

func decodeStruct(s *zcbor.State, v reflect.Value) error {
	fields := slices.Collect(collectFields(v))
	mapFields := make([]zcbor.MapField, 0, len(fields))
	for _, fv := range fields {
		fv := fv
		min := 1
		if fv.params.Optional {
			min = 0
		}
		mapFields = append(mapFields, zcbor.MapField{
			Name: fv.params.Key,
			Min:  min,
			Max:  1,
			DecodeKey: func(s *zcbor.State) error {
				return s.ExpectTstr(fv.params.Key)
			},
			DecodeValue: func(s *zcbor.State) error {
				return decodeValue(s, fv.value, fv.params)
			},
		})
	}
	return zcbor.DecodeUnorderedMap(s, mapFields)
}
