package condition

import (
	"errors"
	"testing"
	"time"

	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

func group(t *testing.T, body string) ([]Condition, error) {
	t.Helper()
	e, err := markup.Fragment(`<Condition xmlns="http://otds-group.org/otds">`+body+`</Condition>`, markup.NewDialect())
	if err != nil {
		t.Fatalf("Fragment() error = %v", err)
	}
	return ParseGroup(e)
}

func single(t *testing.T, body string) Condition {
	t.Helper()
	conds, err := group(t, body)
	if err != nil {
		t.Fatalf("ParseGroup() error = %v", err)
	}
	if len(conds) != 1 {
		t.Fatalf("len(conds) = %d, want 1", len(conds))
	}
	return conds[0]
}

func TestParse_DegenerateShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"not without child", `<Not/>`, types.ErrSchemaViolation},
		{"not with two children", `<Not><Keys Source="p">A</Keys><Keys Source="p">B</Keys></Not>`, types.ErrSchemaViolation},
		{"empty and", `<And/>`, types.ErrSchemaViolation},
		{"empty or", `<Or/>`, types.ErrSchemaViolation},
		{"match equal with one operand", `<MatchEqual><Key Source="a"/></MatchEqual>`, types.ErrSchemaViolation},
		{"imply without then", `<Imply><If><Keys Source="p">A</Keys></If></Imply>`, types.ErrSchemaViolation},
		{"imply without if", `<Imply><Then><Keys Source="p">A</Keys></Then></Imply>`, types.ErrSchemaViolation},
		{"imply with empty branch", `<Imply><If/><Then><Keys Source="p">A</Keys></Then></Imply>`, types.ErrSchemaViolation},
		{"impact without tags", `<Impact/>`, types.ErrSchemaViolation},
		{"unknown leaf", `<Moon Source="p"/>`, types.ErrUnsupportedFeature},
		{"missing source", `<Keys>A</Keys>`, types.ErrSchemaViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := group(t, tt.body)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ParseGroup() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse_AttributeAllowList(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"conditional tags day allocation", `<ConditionalTags Source="p" Class="X" DayAllocation="First">a</ConditionalTags>`},
		{"conditional tags offset", `<ConditionalTags Source="p" Class="X" Offset="1">a</ConditionalTags>`},
		{"conditional tags length", `<ConditionalTags Source="p" Class="X" Length="2">a</ConditionalTags>`},
		{"keys evaluation mode", `<Keys Source="p" EvaluationMode="All">A</Keys>`},
		{"person age day allocation", `<PersonImpact><PersonAge Source="p" DayAllocation="All"/></PersonImpact>`},
		{"impact execution order", `<Impact ImpactExecutionOrder="AfterCombinatorics"><ConditionalTags Source="p" Class="X">a</ConditionalTags></Impact>`},
		{"day index interval type", `<DayImpact><DayIndex Source="p" IntervalType="Week"><From>1</From></DayIndex></DayImpact>`},
		{"match tag value type", `<MatchEqual><Tag Source="a" Class="X" TagValueType="Number"/><Key Source="b"/></MatchEqual>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := group(t, tt.body)
			if !errors.Is(err, types.ErrUnsupportedFeature) {
				t.Fatalf("ParseGroup() error = %v, want ErrUnsupportedFeature", err)
			}
		})
	}
}

func TestParse_ExplicitDefaultsAccepted(t *testing.T) {
	c := single(t, `<ConditionalTags Source="p" Class="X" DayAllocation="All" EvaluationMode="Any" Offset="0">a b</ConditionalTags>`)
	got, ok := c.(ConditionalTags)
	if !ok {
		t.Fatalf("Parse() = %T, want ConditionalTags", c)
	}
	if len(got.Values) != 2 || got.Values[1] != "b" {
		t.Errorf("Values = %v, want [a b]", got.Values)
	}
}

func TestParse_Tags(t *testing.T) {
	c := single(t, `<Tags Source="ThisComponent" Class="Region" Offset="2" Length="3">ABC DEF</Tags>`)
	got, ok := c.(Tags)
	if !ok {
		t.Fatalf("Parse() = %T, want Tags", c)
	}
	if got.DayAllocation != vocab.DayAllocationAll {
		t.Errorf("DayAllocation = %q, want default %q", got.DayAllocation, vocab.DayAllocationAll)
	}
	if got.Mode != vocab.EvaluationAny {
		t.Errorf("Mode = %q, want Any", got.Mode)
	}
	if got.Slice.Start != 2 || got.Slice.End == nil || *got.Slice.End != 5 {
		t.Errorf("Slice = %+v, want [2:5]", got.Slice)
	}

	open := single(t, `<Tags Source="p" Class="Region" EvaluationMode="All" DayAllocation="Last">X</Tags>`).(Tags)
	if open.Slice.End != nil {
		t.Errorf("Slice.End = %v, want nil without Length", *open.Slice.End)
	}
	if open.Mode != vocab.EvaluationAll || open.DayAllocation != vocab.DayAllocationLast {
		t.Errorf("Mode, DayAllocation = %q, %q", open.Mode, open.DayAllocation)
	}
}

func TestParse_NestedConnectives(t *testing.T) {
	c := single(t, `
		<Or>
			<And>
				<Weekdays Source="p">Saturday Sunday</Weekdays>
				<Not><Airports Source="p" AirportType="Departure">FRA MUC</Airports></Not>
			</And>
			<Imply>
				<If><Keys Source="p" DayAllocation="First">K1</Keys></If>
				<Then><BookingDateOffset Source="p"><Min>14</Min></BookingDateOffset></Then>
			</Imply>
		</Or>`)

	or, ok := c.(Or)
	if !ok || len(or.Children) != 2 {
		t.Fatalf("Parse() = %#v, want Or with 2 children", c)
	}
	and := or.Children[0].(And)
	w := and.Children[0].(Weekdays)
	if w.DayType != vocab.DayCheckIn || len(w.Days) != 2 {
		t.Errorf("Weekdays = %+v", w)
	}
	not := and.Children[1].(Not)
	if a := not.Child.(Airports); a.Type != vocab.AirportDeparture || a.Codes[1] != "MUC" {
		t.Errorf("Airports = %+v", a)
	}
	imply := or.Children[1].(Imply)
	if k := imply.If.(Keys); k.DayAllocation == nil || *k.DayAllocation != vocab.DayAllocationFirst {
		t.Errorf("Keys = %+v", k)
	}
	if off := imply.Then.(BookingDateOffset); off.Min == nil || *off.Min != 14 || off.Max != nil {
		t.Errorf("BookingDateOffset = %+v", off)
	}
}

func TestParse_DateAndDuration(t *testing.T) {
	d := single(t, `<Date Source="p"><Min>2024-05-01</Min><Dates>2024-05-03 2024-05-04</Dates></Date>`).(Date)
	if d.DayType != vocab.DayStay {
		t.Errorf("DayType = %q, want Stay", d.DayType)
	}
	if !d.Min.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) || d.Max != nil {
		t.Errorf("Bounds = %v..%v", d.Min, d.Max)
	}
	if len(d.Dates) != 2 {
		t.Errorf("Dates = %v", d.Dates)
	}

	dur := single(t, `<Duration Source="p" DurationUnit="Weeks"><Min>1</Min><Max>3</Max><MultiplesOf>7</MultiplesOf></Duration>`).(Duration)
	if *dur.Min != 7*24*time.Hour || *dur.Max != 21*24*time.Hour {
		t.Errorf("Duration bounds = %v..%v", *dur.Min, *dur.Max)
	}
	if dur.MultiplesOf == nil || *dur.MultiplesOf != 7 {
		t.Errorf("MultiplesOf = %v", dur.MultiplesOf)
	}

	nights := single(t, `<Duration Source="p"><Durations>7 14</Durations></Duration>`).(Duration)
	if nights.Unit != vocab.UnitNights || len(nights.Durations) != 2 {
		t.Errorf("Duration = %+v", nights)
	}

	if _, err := group(t, `<Date Source="p"><Min>01.05.2024</Min></Date>`); !errors.Is(err, types.ErrMalformedValue) {
		t.Errorf("bad date error = %v, want ErrMalformedValue", err)
	}
}

func TestParse_Impacts(t *testing.T) {
	day := single(t, `<DayImpact><DayIndex Source="p" Repeat="7"><From>2</From><Until>5</Until></DayIndex></DayImpact>`).(DayImpact)
	if day.DayIndex == nil || day.Date != nil || day.Weekdays != nil {
		t.Fatalf("DayImpact = %+v, want DayIndex only", day)
	}
	if *day.DayIndex.Repeat != 7 || len(day.DayIndex.Entries) != 2 || day.DayIndex.Entries[1].Bound != vocab.DayIndexUntil {
		t.Errorf("DayIndex = %+v", day.DayIndex)
	}

	person := single(t, `<PersonImpact><PersonIndex Source="p"><Indices>1 3</Indices><PersonFilter><ConditionalTags Source="p" Class="X">a</ConditionalTags></PersonFilter></PersonIndex></PersonImpact>`).(PersonImpact)
	if person.Index == nil || len(person.Index.Indices) != 2 || len(person.Index.Filter) != 1 {
		t.Errorf("PersonImpact = %+v", person)
	}

	genders := single(t, `<PersonImpact><PersonGenders Source="p">Female</PersonGenders></PersonImpact>`).(PersonImpact)
	if genders.Genders == nil || genders.Genders.Genders[0] != vocab.GenderFemale {
		t.Errorf("PersonGenders = %+v", genders)
	}

	count := single(t, `<PersonCount Source="p"><Min>2</Min><PersonFilter><Impact><ConditionalTags Source="p" Class="Adult">yes</ConditionalTags></Impact></PersonFilter></PersonCount>`).(PersonCount)
	if *count.Min != 2 || count.Filter == nil || count.Filter.Tags.Class != "Adult" {
		t.Errorf("PersonCount = %+v", count)
	}

	if _, err := group(t, `<PersonCount Source="p"><PersonFilter/></PersonCount>`); !errors.Is(err, types.ErrSchemaViolation) {
		t.Errorf("empty PersonFilter error = %v, want ErrSchemaViolation", err)
	}
}

func TestParse_MatchEqualAndPersonGroup(t *testing.T) {
	m := single(t, `<MatchEqual><Element Source="a">DepartureAirport</Element><Tag Source="b" Class="Origin"/><Key Source="c"/></MatchEqual>`).(MatchEqual)
	if len(m.Operands) != 3 {
		t.Fatalf("len(Operands) = %d, want 3", len(m.Operands))
	}
	want := []OperandKind{OperandElement, OperandTag, OperandKey}
	for i, op := range m.Operands {
		if op.Kind != want[i] {
			t.Errorf("Operands[%d].Kind = %v, want %v", i, op.Kind, want[i])
		}
	}
	if m.Operands[0].Element != vocab.MatchDepartureAirport || m.Operands[1].Class != "Origin" {
		t.Errorf("Operands = %+v", m.Operands)
	}

	pg := single(t, `<PersonGroup Source="p"><Person><MinAge>18</MinAge><MinCount>2</MinCount></Person><Person><MinCount>1</MinCount></Person></PersonGroup>`).(PersonGroup)
	if len(pg.Members) != 2 || *pg.Members[0].MinAge != 18 || pg.Members[1].MinAge != nil {
		t.Errorf("PersonGroup = %+v", pg)
	}
}

func TestKindString(t *testing.T) {
	if KindMatchEqual.String() != "MatchEqual" {
		t.Errorf("KindMatchEqual.String() = %q", KindMatchEqual.String())
	}
	if Kind(99).String() != "Unknown" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}
