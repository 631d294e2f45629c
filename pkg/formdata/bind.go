package formdata

import (
	"fmt"
	"reflect"
)

var (
	fileType    = reflect.TypeOf(File{})
	filePtrType = reflect.TypeOf(&File{})
	bytesType   = reflect.TypeOf([]byte(nil))
)

// Bind fills the exported fields of the struct pointed to by v from the
// parts visible to c. Fields tagged `form:"name"` receive text values and
// fields tagged `file:"name"` receive uploaded files. Missing fields are
// left untouched.
//
// Supported field types:
//   - form: string, *string, []string, []byte
//   - file: File, *File, []File, []*File
//
// Example:
//
//	type UploadRequest struct {
//		Title   string          `form:"title"`
//		Tags    []string        `form:"tag"`
//		Avatar  *formdata.File  `file:"avatar"`
//		Gallery []formdata.File `file:"gallery"`
//	}
//
//	var req UploadRequest
//	if err := formdata.Bind(p.Cursor(), &req); err != nil {
//		return err
//	}
func Bind(c *Cursor, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return ErrInvalidTarget
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		if tag := sf.Tag.Get("form"); tag != "" && tag != "-" {
			if err := setFormField(c, field, tag); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrUnsupportedField, sf.Name, err)
			}
			continue
		}

		if tag := sf.Tag.Get("file"); tag != "" && tag != "-" {
			if err := setFileField(c, field, tag); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrUnsupportedField, sf.Name, err)
			}
		}
	}

	return nil
}

func setFormField(c *Cursor, field reflect.Value, name string) error {
	ft := field.Type()

	switch {
	case ft.Kind() == reflect.String:
		if s, ok := c.Text(name); ok {
			field.SetString(s)
		}
	case ft.Kind() == reflect.Ptr && ft.Elem().Kind() == reflect.String:
		if s, ok := c.Text(name); ok {
			ptr := reflect.New(ft.Elem())
			ptr.Elem().SetString(s)
			field.Set(ptr)
		}
	case ft == bytesType:
		if data, ok := c.Content(name); ok {
			field.SetBytes(append([]byte(nil), data...))
		}
	case ft.Kind() == reflect.Slice && ft.Elem().Kind() == reflect.String:
		values := c.Values(name)
		if len(values) == 0 {
			return nil
		}
		slice := reflect.MakeSlice(ft, len(values), len(values))
		for i, s := range values {
			slice.Index(i).SetString(s)
		}
		field.Set(slice)
	default:
		return fmt.Errorf("form tag on %s", ft)
	}
	return nil
}

func setFileField(c *Cursor, field reflect.Value, name string) error {
	ft := field.Type()

	switch ft {
	case fileType:
		if f, ok := c.File(name); ok {
			field.Set(reflect.ValueOf(f))
		}
	case filePtrType:
		if f, ok := c.File(name); ok {
			field.Set(reflect.ValueOf(&f))
		}
	case reflect.SliceOf(fileType):
		if files := c.Files(name); len(files) > 0 {
			field.Set(reflect.ValueOf(files))
		}
	case reflect.SliceOf(filePtrType):
		files := c.Files(name)
		if len(files) == 0 {
			return nil
		}
		ptrs := make([]*File, len(files))
		for i := range files {
			ptrs[i] = &files[i]
		}
		field.Set(reflect.ValueOf(ptrs))
	default:
		return fmt.Errorf("file tag on %s", ft)
	}
	return nil
}
