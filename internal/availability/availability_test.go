package availability

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
)

const ns = `xmlns="http://otds-group.org/otds"`

func parse(t *testing.T, body string) (Set, error) {
	t.Helper()
	e, err := markup.Fragment(`<Availabilities `+ns+` Key="AV">`+body+`</Availabilities>`, markup.NewDialect())
	if err != nil {
		t.Fatalf("Fragment() error = %v", err)
	}
	var set Set
	err = ParseAvailabilities(e, &set)
	return set, err
}

func only(t *testing.T, set Set) Availability {
	t.Helper()
	av, ok := set.Get("AV")
	if !ok {
		t.Fatalf("Availabilities AV missing")
	}
	if av.Items.Len() != 1 {
		t.Fatalf("got %d availabilities, want 1", av.Items.Len())
	}
	for _, a := range av.Items.All() {
		return a
	}
	return Availability{}
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolve_OverrideAtOffset(t *testing.T) {
	set, err := parse(t, `
		<Availability Key="A" StartDate="2024-01-01" EndDate="2024-01-10">
			<DefaultDayState><Open>5</Open></DefaultDayState>
			<DayState Key="d3" Offset="3"><Closed/></DayState>
		</Availability>`)
	if err != nil {
		t.Fatalf("ParseAvailabilities() error = %v", err)
	}
	a := only(t, set)

	if got := a.Days(); got != 10 {
		t.Fatalf("Days() = %d, want 10", got)
	}
	for d := date("2024-01-01"); !d.After(date("2024-01-10")); d = d.AddDate(0, 0, 1) {
		day, ok := a.Resolve(d)
		if !ok {
			t.Fatalf("Resolve(%s) out of range", d.Format("2006-01-02"))
		}
		if d.Equal(date("2024-01-04")) {
			if day.DayState.State != Closed {
				t.Errorf("Resolve(2024-01-04) = %v, want Closed", day.DayState.State)
			}
			continue
		}
		if day.DayState.State != Open || day.DayState.Capacity == nil || *day.DayState.Capacity != 5 {
			t.Errorf("Resolve(%s) = %+v, want Open(5)", d.Format("2006-01-02"), day.DayState)
		}
	}

	for _, d := range []string{"2023-12-31", "2024-01-11"} {
		if _, ok := a.Resolve(date(d)); ok {
			t.Errorf("Resolve(%s) in range, want out of range", d)
		}
	}
}

func TestResolve_CapacityIsCopied(t *testing.T) {
	set, err := parse(t, `
		<Availability Key="A" StartDate="2024-01-01" EndDate="2024-01-02">
			<DefaultDayState><Open>5</Open></DefaultDayState>
		</Availability>`)
	if err != nil {
		t.Fatalf("ParseAvailabilities() error = %v", err)
	}
	a := only(t, set)

	day, _ := a.Resolve(date("2024-01-01"))
	*day.DayState.Capacity = 99

	again, _ := a.Resolve(date("2024-01-02"))
	if again.DayState.Capacity == nil || *again.DayState.Capacity != 5 {
		t.Errorf("stored capacity changed through Resolve result: %+v", again.DayState)
	}
	if *a.Default.DayState.Capacity != 5 {
		t.Errorf("Default capacity = %d, want 5", *a.Default.DayState.Capacity)
	}
}

func TestResolve_LaterOverrideWins(t *testing.T) {
	set, err := parse(t, `
		<Availability Key="A" StartDate="2024-03-01" EndDate="2024-03-03">
			<DefaultDayState><Closed/></DefaultDayState>
			<DayState Key="first" Offset="1"><Open>2</Open><NoCheckIn/></DayState>
			<DayState Key="second" Offset="1"><Request/><CheckOut State="Request"/></DayState>
		</Availability>`)
	if err != nil {
		t.Fatalf("ParseAvailabilities() error = %v", err)
	}
	day, ok := only(t, set).Resolve(date("2024-03-02"))
	if !ok {
		t.Fatalf("Resolve() out of range")
	}
	if day.DayState.State != Request || day.DayState.Capacity != nil {
		t.Errorf("DayState = %+v, want Request without capacity", day.DayState)
	}
	if day.CheckIn.Kind != Inherit {
		t.Errorf("CheckIn = %+v, want Inherit", day.CheckIn)
	}
	if day.CheckOut.Kind != Allowed || day.CheckOut.State != "Request" {
		t.Errorf("CheckOut = %+v, want Allowed(Request)", day.CheckOut)
	}
}

func TestParse_DefaultCheckOut(t *testing.T) {
	set, err := parse(t, `
		<Availability Key="A" StartDate="2024-01-01" EndDate="2024-01-01">
			<DefaultDayState><Request>3</Request><CheckOut>1</CheckOut></DefaultDayState>
		</Availability>`)
	if err != nil {
		t.Fatalf("ParseAvailabilities() error = %v", err)
	}
	d := only(t, set).Default
	if d.CheckOut == nil || d.CheckOut.Capacity == nil || *d.CheckOut.Capacity != 1 {
		t.Errorf("Default.CheckOut = %+v, want Open(1)", d.CheckOut)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name:    "end before start",
			body:    `<Availability Key="A" StartDate="2024-01-10" EndDate="2024-01-01"><DefaultDayState><Closed/></DefaultDayState></Availability>`,
			wantErr: types.ErrMalformedValue,
		},
		{
			name:    "offset past end",
			body:    `<Availability Key="A" StartDate="2024-01-01" EndDate="2024-01-03"><DefaultDayState><Closed/></DefaultDayState><DayState Key="x" Offset="3"><Open/></DayState></Availability>`,
			wantErr: types.ErrMalformedValue,
		},
		{
			name:    "negative offset",
			body:    `<Availability Key="A" StartDate="2024-01-01" EndDate="2024-01-03"><DefaultDayState><Closed/></DefaultDayState><DayState Key="x" Offset="-1"><Open/></DayState></Availability>`,
			wantErr: types.ErrMalformedValue,
		},
		{
			name:    "missing default",
			body:    `<Availability Key="A" StartDate="2024-01-01" EndDate="2024-01-03"/>`,
			wantErr: types.ErrSchemaViolation,
		},
		{
			name:    "default check-out on request",
			body:    `<Availability Key="A" StartDate="2024-01-01" EndDate="2024-01-03"><DefaultDayState><Open/><CheckOut State="Request"/></DefaultDayState></Availability>`,
			wantErr: types.ErrUnsupportedFeature,
		},
		{
			name:    "day check-out with capacity",
			body:    `<Availability Key="A" StartDate="2024-01-01" EndDate="2024-01-03"><DefaultDayState><Open/></DefaultDayState><DayState Key="x" Offset="0"><Open/><CheckOut>2</CheckOut></DayState></Availability>`,
			wantErr: types.ErrUnsupportedFeature,
		},
		{
			name:    "merge mode",
			body:    `<Availability Key="A" UpdateMode="Merge" StartDate="2024-01-01" EndDate="2024-01-03"><DefaultDayState><Open/></DefaultDayState></Availability>`,
			wantErr: types.ErrUnsupportedFeature,
		},
		{
			name:    "duplicate day state key",
			body:    `<Availability Key="A" StartDate="2024-01-01" EndDate="2024-01-03"><DefaultDayState><Open/></DefaultDayState><DayState Key="x" Offset="0"><Open/></DayState><DayState Key="x" Offset="1"><Open/></DayState></Availability>`,
			wantErr: types.ErrOverwriteConflict,
		},
		{
			name:    "bad check-in state",
			body:    `<Availability Key="A" StartDate="2024-01-01" EndDate="2024-01-03"><DefaultDayState><Open/></DefaultDayState><DayState Key="x" Offset="0"><Open/><CheckIn State="Closed"/></DayState></Availability>`,
			wantErr: types.ErrMalformedValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.body)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseAvailabilities() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// A single override changes exactly its own day.
func TestResolve_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("override affects only its offset", prop.ForAll(
		func(days, capacity, offset int) bool {
			offset %= days
			start := date("2024-02-20")
			end := start.AddDate(0, 0, days-1)
			set, err := parse(t, fmt.Sprintf(`
				<Availability Key="A" StartDate="%s" EndDate="%s">
					<DefaultDayState><Open>%d</Open></DefaultDayState>
					<DayState Key="o" Offset="%d"><Closed/></DayState>
				</Availability>`,
				start.Format("2006-01-02"), end.Format("2006-01-02"), capacity, offset))
			if err != nil {
				return false
			}
			a := only(t, set)
			want := DayState{State: Open, Capacity: &capacity}
			for i := 0; i < days; i++ {
				day, ok := a.Resolve(start.AddDate(0, 0, i))
				if !ok {
					return false
				}
				if i == offset {
					if day.DayState.State != Closed {
						return false
					}
					continue
				}
				if !day.DayState.Equal(want) {
					return false
				}
			}
			_, ok := a.Resolve(end.AddDate(0, 0, 1))
			return !ok
		},
		gen.IntRange(1, 60),
		gen.IntRange(0, 50),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}
