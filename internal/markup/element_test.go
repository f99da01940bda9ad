package markup

import (
	"errors"
	"strings"
	"testing"

	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

const ns = `xmlns="http://otds-group.org/otds"`

func mustFragment(t *testing.T, xml string) Element {
	t.Helper()
	e, err := Fragment(xml, NewDialect())
	if err != nil {
		t.Fatalf("Fragment() error = %v", err)
	}
	return e
}

func TestRoot(t *testing.T) {
	tests := []struct {
		name    string
		xml     string
		wantErr error
	}{
		{name: "otds root", xml: `<OTDS ` + ns + `/>`},
		{name: "wrong root", xml: `<Catalog ` + ns + `/>`, wantErr: types.ErrSchemaViolation},
		{name: "no namespace", xml: `<OTDS/>`, wantErr: types.ErrSchemaViolation},
		{name: "foreign namespace", xml: `<OTDS xmlns="urn:other"/>`, wantErr: types.ErrSchemaViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadBytes([]byte(tt.xml))
			if err != nil {
				t.Fatalf("ReadBytes() error = %v", err)
			}
			_, err = Root(doc, NewDialect())
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Root() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Root() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadBytes_Malformed(t *testing.T) {
	if _, err := ReadBytes([]byte(`<OTDS><open></OTDS>`)); !errors.Is(err, types.ErrSchemaViolation) {
		t.Errorf("ReadBytes() error = %v, want ErrSchemaViolation", err)
	}
}

func TestChildren_PathAndNamespace(t *testing.T) {
	e := mustFragment(t, `<Accommodations `+ns+`><!-- note --><Accommodation Key="A1"/><PriceItems Key="P"/></Accommodations>`)
	kids, err := e.Children()
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}
	if len(kids) != 2 {
		t.Fatalf("len(Children()) = %d, want 2", len(kids))
	}
	if got := kids[0].Path(); got != "/Accommodations/Accommodation[@Key='A1']" {
		t.Errorf("Path() = %q", got)
	}

	foreign := mustFragment(t, `<Tags `+ns+`><x:Tag xmlns:x="urn:x"/></Tags>`)
	if _, err := foreign.Children(); !errors.Is(err, types.ErrSchemaViolation) {
		t.Errorf("Children() with foreign element error = %v, want ErrSchemaViolation", err)
	}
}

func TestAttributeAllowList(t *testing.T) {
	e := mustFragment(t, `<Tag `+ns+` EvaluationMode="All" Offset="0" Length="2" DayAllocation="First"/>`)

	if err := e.Expect("EvaluationMode", "Any"); !errors.Is(err, types.ErrUnsupportedFeature) {
		t.Errorf("Expect(EvaluationMode) error = %v, want ErrUnsupportedFeature", err)
	}
	if err := e.Expect("TagValueType", "String"); err != nil {
		t.Errorf("Expect(absent) error = %v", err)
	}
	if err := e.ExpectInt("Offset", 0); err != nil {
		t.Errorf("ExpectInt(Offset=0) error = %v", err)
	}
	if err := e.ExpectInt("Length", 0); !errors.Is(err, types.ErrUnsupportedFeature) {
		t.Errorf("ExpectInt(Length=2) error = %v, want ErrUnsupportedFeature", err)
	}
	if err := e.Forbid("Class", "DayAllocation"); !errors.Is(err, types.ErrUnsupportedFeature) {
		t.Errorf("Forbid(DayAllocation) error = %v, want ErrUnsupportedFeature", err)
	}
	if _, err := e.RequireAttr("Source"); !errors.Is(err, types.ErrSchemaViolation) {
		t.Errorf("RequireAttr(missing) error = %v, want ErrSchemaViolation", err)
	}
}

func TestIntAttr_Malformed(t *testing.T) {
	e := mustFragment(t, `<BookingParameter `+ns+` PadLength="five"/>`)
	_, err := e.IntAttr("PadLength", 0)
	if !errors.Is(err, types.ErrMalformedValue) {
		t.Fatalf("IntAttr() error = %v, want ErrMalformedValue", err)
	}
	var located *types.Error
	if !errors.As(err, &located) || located.Path != "/BookingParameter" {
		t.Errorf("IntAttr() error not located: %#v", err)
	}
}

func TestUpdateMode(t *testing.T) {
	tests := []struct {
		attr    string
		want    vocab.UpdateMode
		wantErr error
	}{
		{attr: "", want: vocab.UpdateNew},
		{attr: `UpdateMode="New"`, want: vocab.UpdateNew},
		{attr: `UpdateMode="Merge"`, want: vocab.UpdateMerge, wantErr: types.ErrUnsupportedFeature},
		{attr: `UpdateMode="Delete"`, want: vocab.UpdateDelete, wantErr: types.ErrUnsupportedFeature},
		{attr: `UpdateMode="Replace"`, wantErr: types.ErrMalformedValue},
	}
	for _, tt := range tests {
		e := mustFragment(t, `<Brand `+ns+` `+tt.attr+`/>`)
		got, err := e.UpdateMode()
		if errors.Is(tt.wantErr, types.ErrMalformedValue) {
			if !errors.Is(err, types.ErrMalformedValue) {
				t.Errorf("UpdateMode(%s) error = %v, want ErrMalformedValue", tt.attr, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("UpdateMode(%s) = %v, %v; want %v", tt.attr, got, err, tt.want)
		}
		err = e.RequireNew()
		if tt.wantErr == nil && err != nil {
			t.Errorf("RequireNew(%s) error = %v", tt.attr, err)
		}
		if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
			t.Errorf("RequireNew(%s) error = %v, want %v", tt.attr, err, tt.wantErr)
		}
	}
}

func TestTextHelpers(t *testing.T) {
	e := mustFragment(t, `<Airports `+ns+`> PMI  FRA
	MUC </Airports>`)
	got, err := e.FieldsText()
	if err != nil {
		t.Fatalf("FieldsText() error = %v", err)
	}
	if strings.Join(got, ",") != "PMI,FRA,MUC" {
		t.Errorf("FieldsText() = %v", got)
	}

	empty := mustFragment(t, `<Open `+ns+`/>`)
	n, err := empty.OptionalIntText()
	if err != nil || n != nil {
		t.Errorf("OptionalIntText(empty) = %v, %v; want nil, nil", n, err)
	}
	if _, err := empty.RequireText(); !errors.Is(err, types.ErrSchemaViolation) {
		t.Errorf("RequireText(empty) error = %v, want ErrSchemaViolation", err)
	}
}

func TestEnumHelpers(t *testing.T) {
	e := mustFragment(t, `<Weekdays `+ns+` DayType="Stay">Monday Friday</Weekdays>`)
	dt, err := EnumAttr(e, "DayType", vocab.DayCheckIn, vocab.ParseDayType)
	if err != nil || dt != vocab.DayStay {
		t.Errorf("EnumAttr() = %v, %v", dt, err)
	}
	days, err := EnumList(e, vocab.ParseWeekday)
	if err != nil || len(days) != 2 || days[1] != vocab.Friday {
		t.Errorf("EnumList() = %v, %v", days, err)
	}

	bad := mustFragment(t, `<Weekdays `+ns+`>Funday</Weekdays>`)
	if _, err := EnumList(bad, vocab.ParseWeekday); !errors.Is(err, types.ErrMalformedValue) {
		t.Errorf("EnumList(Funday) error = %v, want ErrMalformedValue", err)
	}
}

func TestInsert(t *testing.T) {
	e := mustFragment(t, `<Filter `+ns+`/>`)
	var into types.Ordered[types.Key, int]
	if err := Insert(e, &into, "a", 1); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := Insert(e, &into, "a", 2); !errors.Is(err, types.ErrOverwriteConflict) {
		t.Errorf("Insert(duplicate) error = %v, want ErrOverwriteConflict", err)
	}
	if v, _ := into.Get("a"); v != 1 {
		t.Errorf("duplicate insert overwrote value: %d", v)
	}
}

func TestDialect(t *testing.T) {
	d := NewDialect()
	if n, ok := d.ComponentName(vocab.ProductFlightAccommodation); !ok || n != "CombiComponent" {
		t.Errorf("ComponentName(FlightAccommodation) = %q, %v", n, ok)
	}
	if pt, ok := d.ProductTypeForRole(vocab.RoleOnewayFlight); !ok || pt != vocab.ProductOnewayFlightOnly {
		t.Errorf("ProductTypeForRole(OnewayFlight) = %q, %v", pt, ok)
	}
	if _, ok := d.ProductTypeForRole(vocab.RoleInbound); ok {
		t.Errorf("ProductTypeForRole(Inbound) resolved, want no mapping")
	}
}
