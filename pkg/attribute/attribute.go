// Copyright 2026 The Glimpse Authors. All rights reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package attribute

import (
	"fmt"
	"log"
	"reflect"
	"sort"
	"strings"
)

const (
	errUnsupportedAttribute = "unsupported attribute %v"
)

var (
	boolType   = reflect.TypeOf(true)
	intType    = reflect.TypeOf(0)
	floatType  = reflect.TypeOf(float64(0.))
	stringType = reflect.TypeOf("")
)

// Dictionary contains the description of all attributes
type Dictionary map[string]*description

// description describes a requirement for a particular attribute
type description struct {
	typ          reflect.Type
	defaultValue interface{}
	doc          string
	checker      func(value interface{}, name string) error
}

// Int declares an attribute of int-typed in Dictionary d.
func (d Dictionary) Int(name string, value interface{}, doc string, checker func(int) error) Dictionary {
	interfaceChecker := func(value interface{}, name string) error {
		if intValue, ok := value.(int); ok {
			if checker != nil {
				if err := checker(intValue); err != nil {
					return fmt.Errorf("attribute %s error: %s", name, err)
				}
			}
			return nil
		}
		return fmt.Errorf("attribute %s must be of type int, but got %T", name, value)
	}

	if value != nil {
		if err := interfaceChecker(value, name); err != nil {
			log.Panicf("default value of attribute %s is invalid, error is: %s", name, err)
		}
	}

	d[name] = &description{
		typ:          intType,
		defaultValue: value,
		doc:          doc,
		checker:      interfaceChecker,
	}
	return d
}

// Float declares an attribute of float64-typed in Dictionary d.
func (d Dictionary) Float(name string, value interface{}, doc string, checker func(float64) error) Dictionary {
	interfaceChecker := func(value interface{}, name string) error {
		var fValue float64
		if floatValue, ok := value.(float64); ok {
			fValue = floatValue
		} else if intValue, ok := value.(int); ok { // implicit type conversion from int to float
			fValue = float64(intValue)
		} else {
			return fmt.Errorf("attribute %s must be of type float, but got %T", name, value)
		}

		if checker != nil {
			if err := checker(fValue); err != nil {
				return fmt.Errorf("attribute %s error: %s", name, err)
			}
		}
		return nil
	}

	if value != nil {
		if err := interfaceChecker(value, name); err != nil {
			log.Panicf("default value of attribute %s is invalid, error is: %s", name, err)
		}
	}

	var fInterfaceValue interface{}
	if floatValue, ok := value.(float64); ok {
		fInterfaceValue = floatValue
	} else if intValue, ok := value.(int); ok {
		fInterfaceValue = float64(intValue)
	}

	d[name] = &description{
		typ:          floatType,
		defaultValue: fInterfaceValue,
		doc:          doc,
		checker:      interfaceChecker,
	}
	return d
}

// Bool declares an attribute of bool-typed in Dictionary d.
func (d Dictionary) Bool(name string, value interface{}, doc string, checker func(bool) error) Dictionary {
	interfaceChecker := func(value interface{}, name string) error {
		if boolValue, ok := value.(bool); ok {
			if checker != nil {
				if err := checker(boolValue); err != nil {
					return fmt.Errorf("attribute %s error: %s", name, err)
				}
			}
			return nil
		}
		return fmt.Errorf("attribute %s must be of type bool, but got %T", name, value)
	}

	if value != nil {
		if err := interfaceChecker(value, name); err != nil {
			log.Panicf("default value of attribute %s is invalid, error is: %s", name, err)
		}
	}

	d[name] = &description{
		typ:          boolType,
		defaultValue: value,
		doc:          doc,
		checker:      interfaceChecker,
	}
	return d
}

// String declares an attribute of string-typed in Dictionary d.
func (d Dictionary) String(name string, value interface{}, doc string, checker func(string) error) Dictionary {
	interfaceChecker := func(value interface{}, name string) error {
		if stringValue, ok := value.(string); ok {
			if checker != nil {
				if err := checker(stringValue); err != nil {
					return fmt.Errorf("attribute %s error: %s", name, err)
				}
			}
			return nil
		}
		return fmt.Errorf("attribute %s must be of type string, but got %T", name, value)
	}

	if value != nil {
		if err := interfaceChecker(value, name); err != nil {
			log.Panicf("default value of attribute %s is invalid, error is: %s", name, err)
		}
	}

	d[name] = &description{
		typ:          stringType,
		defaultValue: value,
		doc:          doc,
		checker:      interfaceChecker,
	}
	return d
}

// ExportDefaults exports default values defined in Dictionary to attrs.
func (d Dictionary) ExportDefaults(attrs map[string]interface{}) {
	for k, v := range d {
		if v.defaultValue == nil {
			continue
		}
		if _, ok := attrs[k]; !ok {
			attrs[k] = v.defaultValue
		}
	}
}

// Validate validates the attribute based on dictionary. The validation includes
//  1. Type checking
//  2. Custom checker
func (d Dictionary) Validate(attrs map[string]interface{}) error {
	for k, v := range attrs {
		desc, ok := d[k]
		if !ok {
			return fmt.Errorf(errUnsupportedAttribute, k)
		}
		if v != nil && desc.checker != nil {
			if err := desc.checker(v, k); err != nil {
				return err
			}
		}
	}
	return nil
}

// Doc returns a plain-text summary of all declared attributes,
// one per line, sorted by attribute name.
func (d Dictionary) Doc() string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		desc := d[k]
		fmt.Fprintf(&b, "%s (%s): %s\n", k, desc.typ, desc.doc)
	}
	return b.String()
}

// Update updates `d` by copying from `other` key by key
func (d Dictionary) Update(other Dictionary) Dictionary {
	for k, v := range other {
		d[k] = v
	}
	return d
}
