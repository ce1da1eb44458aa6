package question_test

import (
	"errors"
	"testing"

	"github.com/roobscoob/jet-lag-core/gamedata"
	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/question"
	"github.com/roobscoob/jet-lag-core/shape"
)

func buildAndEval(t *testing.T, sh shape.Shape, pt geo.Point) geo.Centimeters {
	t.Helper()
	c := shape.NewCompiler()
	sh.BuildInto(c)
	if err := c.Err(); err != nil {
		t.Fatal(err)
	}
	eval, err := shape.NewCPUEvaluator(c.Instructions())
	if err != nil {
		t.Fatal(err)
	}
	return eval.EvaluateAt(pt.Position())
}

func shapeErrClass(t *testing.T, err error) question.ShapeErrorClass {
	t.Helper()
	var se *question.ShapeError
	if !errors.As(err, &se) {
		t.Fatalf("want *ShapeError, got %v", err)
	}
	return se.Class
}

func TestMeasuringNullAnswerNoEntropy(t *testing.T) {
	ctx := gamedata.NewContext(question.GameState{})
	q := question.MeasuringQuestion{Target: question.MeasureMuseum, Distance: 1000}
	_, err := q.ToShape(question.MeasuringNull, ctx)
	if got := shapeErrClass(t, err); got != question.NoEntropy {
		t.Errorf("class %v", got)
	}
}

func TestMeasuringMissingDataHint(t *testing.T) {
	ctx := gamedata.NewContext(question.GameState{})
	q := question.MeasuringQuestion{Target: question.MeasureCommercialAirport, Distance: 1000}
	_, err := q.ToShape(question.MeasuringCloser, ctx)
	var se *question.ShapeError
	if !errors.As(err, &se) || se.Class != question.MissingData {
		t.Fatalf("want MissingData, got %v", err)
	}
	if se.ResolutionHint != "Download the 'Airports' data bundle to visualize this question." {
		t.Errorf("hint: %q", se.ResolutionHint)
	}
}

func TestMeasuringSeaLevel(t *testing.T) {
	ctx := gamedata.NewContext(question.GameState{})
	// Elevation rises eastward from 0 to 100 m across two degrees.
	tex, err := shape.NewContourTexture(8, 2, -1, 1, -1, 1, func() []float32 {
		v := make([]float32, 16)
		for y := 0; y < 2; y++ {
			for x := 0; x < 8; x++ {
				v[y*8+x] = float32(x) * 10000 / 7
			}
		}
		return v
	}())
	if err != nil {
		t.Fatal(err)
	}
	ctx.SetContourTexture(tex)
	// Asker altitude 50 m.
	q := question.MeasuringQuestion{Target: question.MeasureSeaLevel, Distance: geo.FromMeters(50)}

	closer, err := q.ToShape(question.MeasuringCloser, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if d := buildAndEval(t, closer, geo.Point{Lon: -0.9, Lat: 0}); d >= 0 {
		t.Errorf("low ground under Closer: %d", d)
	}
	if d := buildAndEval(t, closer, geo.Point{Lon: 0.9, Lat: 0}); d < 0 {
		t.Errorf("high ground under Closer: %d", d)
	}

	further, err := q.ToShape(question.MeasuringFurther, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if d := buildAndEval(t, further, geo.Point{Lon: 0.9, Lat: 0}); d >= 0 {
		t.Errorf("high ground under Further: %d", d)
	}
}

func TestMeasuringRailLines(t *testing.T) {
	ctx := gamedata.NewContext(question.GameState{})
	ctx.AddRailLines([]question.RailLine{
		{Positions: []geo.Point{{Lon: -1, Lat: 0}, {Lon: 1, Lat: 0}}},
		{Positions: []geo.Point{{Lon: 0, Lat: 1}, {Lon: 0, Lat: 2}}},
	})
	q := question.MeasuringQuestion{Target: question.MeasureHighSpeedRailLine, Distance: geo.FromMeters(10_000)}
	sh, err := q.ToShape(question.MeasuringCloser, ctx)
	if err != nil {
		t.Fatal(err)
	}
	// On the first line: within 10 km of rail, possible.
	if d := buildAndEval(t, sh, geo.Point{Lon: 0.5, Lat: 0}); d >= 0 {
		t.Errorf("on the rail line under Closer: %d", d)
	}
	// ~55 km north of it: excluded.
	sh2, _ := q.ToShape(question.MeasuringCloser, ctx)
	if d := buildAndEval(t, sh2, geo.Point{Lon: 0.5, Lat: 0.5}); d < 0 {
		t.Errorf("far from rail under Closer: %d", d)
	}
}

func TestThermometer(t *testing.T) {
	q := question.ThermometerQuestion{Start: geo.Point{Lon: -0.1}, End: geo.Point{Lon: 0.1}}
	ctx := gamedata.NewContext(question.GameState{})

	hotter, err := q.ToShape(question.ThermometerHotter, ctx)
	if err != nil {
		t.Fatal(err)
	}
	// Hotter: the hider is on the End side of the bisector.
	if d := buildAndEval(t, hotter, geo.Point{Lon: 0.3}); d >= 0 {
		t.Errorf("end side under Hotter: %d", d)
	}
	if d := buildAndEval(t, hotter, geo.Point{Lon: -0.3}); d <= 0 {
		t.Errorf("start side under Hotter: %d", d)
	}

	colder, err := q.ToShape(question.ThermometerColder, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if d := buildAndEval(t, colder, geo.Point{Lon: -0.3}); d >= 0 {
		t.Errorf("start side under Colder: %d", d)
	}
}

func TestThermometerCoincidentEndpoints(t *testing.T) {
	q := question.ThermometerQuestion{Start: geo.Point{Lon: 1}, End: geo.Point{Lon: 1}}
	_, err := q.ToShape(question.ThermometerHotter, gamedata.NewContext(question.GameState{}))
	if got := shapeErrClass(t, err); got != question.InvalidParameters {
		t.Errorf("class %v", got)
	}
}

func TestMatchingSameAndDifferent(t *testing.T) {
	ctx := gamedata.NewContext(question.GameState{})
	ctx.AddPOIs("park", []question.POI{
		{ID: "west", Position: geo.Point{Lon: -0.2}},
		{ID: "east", Position: geo.Point{Lon: 0.2}},
	})
	q := question.MatchingQuestion{Target: question.MatchPark, Center: geo.Point{Lon: -0.15}}

	same, err := q.ToShape(question.MatchingSame, ctx)
	if err != nil {
		t.Fatal(err)
	}
	// The asker's nearest park is "west"; its cell is the western half.
	if d := buildAndEval(t, same, geo.Point{Lon: -0.3}); d >= 0 {
		t.Errorf("inside the shared cell: %d", d)
	}
	if d := buildAndEval(t, same, geo.Point{Lon: 0.3}); d <= 0 {
		t.Errorf("in the other cell: %d", d)
	}

	diff, err := q.ToShape(question.MatchingDifferent, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if d := buildAndEval(t, diff, geo.Point{Lon: 0.3}); d >= 0 {
		t.Errorf("different answer, other cell: %d", d)
	}
}

func TestMatchingSinglePOINoEntropy(t *testing.T) {
	ctx := gamedata.NewContext(question.GameState{})
	ctx.AddPOIs("park", []question.POI{{ID: "only", Position: geo.Point{}}})
	q := question.MatchingQuestion{Target: question.MatchPark}
	_, err := q.ToShape(question.MatchingSame, ctx)
	if got := shapeErrClass(t, err); got != question.NoEntropy {
		t.Errorf("class %v", got)
	}
}

func TestTentacleWithinRadiusPOI(t *testing.T) {
	ctx := gamedata.NewContext(question.GameState{})
	ctx.AddPOIs("museum", []question.POI{
		{ID: "m-west", Position: geo.Point{Lon: -0.05}},
		{ID: "m-east", Position: geo.Point{Lon: 0.05}},
	})
	q := question.TentacleQuestion{
		Center: geo.Point{}, Radius: geo.FromMeters(20_000),
		Target: question.TentacleMuseum,
	}
	sh, err := q.ToShape(question.TentacleAnswer{ClosestID: "m-west"}, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if d := buildAndEval(t, sh, geo.Point{Lon: -0.04}); d >= 0 {
		t.Errorf("near the named museum: %d", d)
	}
	if d := buildAndEval(t, sh, geo.Point{Lon: 0.04}); d <= 0 {
		t.Errorf("near the other museum: %d", d)
	}
}

func TestTentacleUnknownVenue(t *testing.T) {
	ctx := gamedata.NewContext(question.GameState{})
	ctx.AddPOIs("museum", []question.POI{{ID: "m1", Position: geo.Point{}}})
	q := question.TentacleQuestion{Center: geo.Point{}, Radius: 1000, Target: question.TentacleMuseum}
	_, err := q.ToShape(question.TentacleAnswer{ClosestID: "ghost"}, ctx)
	if got := shapeErrClass(t, err); got != question.InvalidParameters {
		t.Errorf("class %v", got)
	}
}

func TestTentacleMetroLine(t *testing.T) {
	n := gamedata.NewTransitNetwork()
	n.AddComplex("c-west", geo.Point{Lon: -0.05})
	n.AddComplex("c-east", geo.Point{Lon: 0.05})
	n.AddComplex("c-far", geo.Point{Lon: 0.5})
	n.AddStation("s-west", "c-west")
	n.AddStation("s-east", "c-east")
	n.AddStation("s-far", "c-far")
	n.AddTrip("line-1", "s-west", "s-east")

	ctx := gamedata.NewContext(question.GameState{SeekerHidingRadius: geo.FromMeters(400)})
	ctx.SetTransit(n)
	q := question.TentacleQuestion{
		Center: geo.Point{}, Radius: geo.FromMeters(50_000),
		Target: question.TentacleMetroLine,
	}
	sh, err := q.ToShape(question.TentacleAnswer{ClosestID: "line-1"}, ctx)
	if err != nil {
		t.Fatal(err)
	}
	// Near a complex on the answered line.
	if d := buildAndEval(t, sh, geo.Point{Lon: -0.05}); d >= 0 {
		t.Errorf("at an on-line complex: %d", d)
	}
	// Near the off-line complex.
	if d := buildAndEval(t, sh, geo.Point{Lon: 0.5}); d <= 0 {
		t.Errorf("at the off-line complex: %d", d)
	}
}

func TestTentacleMetroNoTransit(t *testing.T) {
	ctx := gamedata.NewContext(question.GameState{})
	q := question.TentacleQuestion{Center: geo.Point{}, Radius: 1000, Target: question.TentacleMetroLine}
	_, err := q.ToShape(question.TentacleAnswer{ClosestID: "line-1"}, ctx)
	if got := shapeErrClass(t, err); got != question.MissingData {
		t.Errorf("class %v", got)
	}
}

func TestPhotoUncomputable(t *testing.T) {
	q := question.PhotoQuestion{Subject: "the tallest building you can see"}
	_, err := q.ToShape(gamedata.NewContext(question.GameState{}))
	if got := shapeErrClass(t, err); got != question.Uncomputable {
		t.Errorf("class %v", got)
	}
}

func TestTemplatesHaveFields(t *testing.T) {
	qs := []question.Question{
		question.MatchingQuestion{},
		question.MeasuringQuestion{},
		question.ThermometerQuestion{},
		question.RadarQuestion{},
		question.TentacleQuestion{},
		question.PhotoQuestion{},
	}
	for _, q := range qs {
		tpl := q.Template()
		if len(tpl.Text) == 0 {
			t.Errorf("%T has empty template", q)
		}
		hasField := false
		for _, seg := range tpl.Text {
			if seg.Field != "" {
				hasField = true
			}
		}
		if !hasField {
			t.Errorf("%T template has no fill-in field", q)
		}
	}
}
