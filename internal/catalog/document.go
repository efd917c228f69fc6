package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"videofeed/ingest/internal/domain"
)

var nullLiteral = []byte("null")

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), nullLiteral)
}

// asObject decodes raw as a JSON object. null and non-objects are rejected.
func asObject(url, field string, raw json.RawMessage) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &domain.SchemaError{URL: url, Field: field, Err: fmt.Errorf("not an object: %w", err)}
	}
	if obj == nil {
		return nil, &domain.SchemaError{URL: url, Field: field, Err: errors.New("is null")}
	}
	return obj, nil
}

// dataArray returns the elements of the document's top-level "data" array.
func dataArray(url string, doc json.RawMessage) ([]json.RawMessage, error) {
	obj, err := asObject(url, "$", doc)
	if err != nil {
		return nil, err
	}

	raw, ok := obj["data"]
	if !ok || isNull(raw) {
		return nil, &domain.SchemaError{URL: url, Field: "data"}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, &domain.SchemaError{URL: url, Field: "data", Err: fmt.Errorf("not an array: %w", err)}
	}
	return elems, nil
}

// scalarString renders a JSON string, number or boolean as text. Numbers
// keep their literal form, so 12 reads as "12". Anything else is not a scalar.
func scalarString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b), true
	}

	return "", false
}

// requiredString reads obj[key] as a string, see scalarString.
func requiredString(url, field string, obj map[string]json.RawMessage, key string) (string, error) {
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return "", &domain.SchemaError{URL: url, Field: field}
	}

	s, ok := scalarString(raw)
	if !ok {
		return "", &domain.SchemaError{URL: url, Field: field, Err: fmt.Errorf("want string, got %s", raw)}
	}
	return s, nil
}

// optString reads obj[key] as a string, "" when absent or not a scalar.
func optString(obj map[string]json.RawMessage, key string) string {
	s, _ := scalarString(obj[key])
	return s
}

// optObject returns obj[key] when it is a JSON object, nil otherwise.
func optObject(obj map[string]json.RawMessage, key string) map[string]json.RawMessage {
	raw, ok := obj[key]
	if !ok {
		return nil
	}

	var inner map[string]json.RawMessage
	if err := json.Unmarshal(raw, &inner); err != nil {
		return nil
	}
	return inner
}

func parseCategory(url string, index int, raw json.RawMessage) (domain.CategoryDescriptor, error) {
	field := fmt.Sprintf("data[%d]", index)

	obj, err := asObject(url, field, raw)
	if err != nil {
		return domain.CategoryDescriptor{}, err
	}

	name, err := requiredString(url, field+".name", obj, "name")
	if err != nil {
		return domain.CategoryDescriptor{}, err
	}

	id, err := requiredString(url, field+".category_id", obj, "category_id")
	if err != nil {
		return domain.CategoryDescriptor{}, err
	}

	return domain.CategoryDescriptor{Name: name, CategoryID: id}, nil
}

// parseItem reads one feed item. Only an item that is not an object fails;
// every field inside it is optional and a field of the wrong type reads as absent.
func parseItem(url string, index int, raw json.RawMessage) (*domain.RawItem, error) {
	if isNull(raw) {
		return &domain.RawItem{}, nil
	}

	obj, err := asObject(url, fmt.Sprintf("data[%d]", index), raw)
	if err != nil {
		return nil, err
	}

	item := &domain.RawItem{
		Title:       optString(obj, "title"),
		Description: optString(obj, "description"),
	}

	if image := optObject(obj, "image"); image != nil {
		item.Image = &domain.Image{URL: optString(image, "url")}
	}

	if renditions := optObject(obj, "renditions"); renditions != nil {
		item.Renditions = &domain.Renditions{MP4: parseRenditions(renditions["mp4"])}
	}

	return item, nil
}

// parseRenditions keeps the array positions: a null or non-object element
// stays nil so that a missing first rendition is still detected.
func parseRenditions(raw json.RawMessage) []*domain.Rendition {
	var elems []json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &elems) != nil {
		return nil
	}

	renditions := make([]*domain.Rendition, len(elems))
	for i, elem := range elems {
		var obj map[string]json.RawMessage
		if json.Unmarshal(elem, &obj) != nil || obj == nil {
			continue
		}

		rendition := &domain.Rendition{}
		if url, ok := scalarString(obj["url"]); ok {
			rendition.URL = &url
		}
		renditions[i] = rendition
	}
	return renditions
}
