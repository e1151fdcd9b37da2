package envelope

import (
	"testing"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
)

const feature = `{"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]},"properties":{"type":"wall"}}`

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		document string
		wantLen  int
	}{
		{
			name:     "top-level bare array",
			document: `{"surfaces":[` + feature + `]}`,
			wantLen:  1,
		},
		{
			name:     "top-level feature collection",
			document: `{"surfaces":{"type":"FeatureCollection","features":[` + feature + `,` + feature + `]}}`,
			wantLen:  2,
		},
		{
			name:     "nested one level under arbitrary key",
			document: `{"result":{"surfaces":[` + feature + `]}}`,
			wantLen:  1,
		},
		{
			name:     "nested feature collection",
			document: `{"bldg_1234":{"surfaces":{"features":[` + feature + `]}}}`,
			wantLen:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features, err := Extract([]byte(tt.document), "surfaces")
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if len(features) != tt.wantLen {
				t.Errorf("len(features) = %d, want %d", len(features), tt.wantLen)
			}
			if features[0].Geometry == nil || features[0].Geometry.Type != "Polygon" {
				t.Error("decoded feature lost its geometry")
			}
		})
	}
}

func TestExtractPrefersTopLevel(t *testing.T) {
	document := `{
		"nested": {"surfaces": [` + feature + `, ` + feature + `]},
		"surfaces": [` + feature + `]
	}`
	features, err := Extract([]byte(document), "surfaces")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(features) != 1 {
		t.Errorf("len(features) = %d, want 1 (top-level location has priority)", len(features))
	}
}

func TestExtractMissing(t *testing.T) {
	_, err := Extract([]byte(`{"other":{}}`), "surfaces")
	if !errors.Is(err, errors.ErrCodeMissingCollection) {
		t.Errorf("err = %v, want MISSING_COLLECTION", err)
	}
}

func TestExtractSkipsNonFeatureArrays(t *testing.T) {
	// "surfaces" exists top-level but holds scalars; the nested real
	// collection must win.
	document := `{"surfaces":[1,2,3],"payload":{"surfaces":[` + feature + `]}}`
	features, err := Extract([]byte(document), "surfaces")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(features) != 1 {
		t.Errorf("len(features) = %d, want 1", len(features))
	}
}

func TestExtractInvalidJSON(t *testing.T) {
	_, err := Extract([]byte(`{not json`), "surfaces")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestExtractAll(t *testing.T) {
	document := `{"surfaces":[` + feature + `],"context":[` + feature + `]}`
	collections, err := ExtractAll([]byte(document), CollectionSurfaces, CollectionContext, CollectionBuilding)
	if err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}
	if len(collections) != 2 {
		t.Errorf("len(collections) = %d, want 2 (missing ones degrade, not fail)", len(collections))
	}

	if _, err := ExtractAll([]byte(`{}`), CollectionSurfaces); !errors.Is(err, errors.ErrCodeMissingCollection) {
		t.Errorf("err = %v, want MISSING_COLLECTION when nothing resolves", err)
	}
}
