package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derecord/derecord/internal/jast"
)

// stubResolver marks the given accessor names as declared by an ancestor
// interface.
type stubResolver map[string]bool

func (r stubResolver) DeclaresNoArgMethod(decl *jast.Declaration, name string) bool {
	return r[name]
}

func vehicleRecord() *jast.Declaration {
	return &jast.Declaration{
		Kind:      jast.KindRecord,
		Name:      "Vehicle",
		Modifiers: []string{"public"},
		Components: []jast.Component{
			{Name: "model", Type: jast.TypeRef{Name: "String"}},
			{Name: "power", Type: jast.TypeRef{Name: "int"}},
		},
	}
}

func memberNames(members []jast.Member) []string {
	names := make([]string, len(members))
	for i, m := range members {
		switch m := m.(type) {
		case *jast.Field:
			names[i] = "field:" + m.Name
		case *jast.Constructor:
			names[i] = "ctor:" + m.Name
		case *jast.Method:
			names[i] = "method:" + m.Name
		}
	}
	return names
}

func TestLowerVehicleEndToEnd(t *testing.T) {
	out, err := Lower(vehicleRecord(), nil)
	require.NoError(t, err)

	assert.Equal(t, jast.KindClass, out.Kind)
	assert.Nil(t, out.Components)
	assert.True(t, out.HasModifier("final"))

	require.Equal(t, []string{
		"field:model",
		"field:power",
		"ctor:Vehicle",
		"method:model",
		"method:power",
		"method:equals",
		"method:hashCode",
		"method:toString",
	}, memberNames(out.Members))

	model := out.Members[0].(*jast.Field)
	assert.Equal(t, []string{"private", "final"}, model.Modifiers)
	assert.Equal(t, "String", model.Type.Name)
	power := out.Members[1].(*jast.Field)
	assert.Equal(t, "int", power.Type.Name)

	ctor := out.Members[2].(*jast.Constructor)
	assert.Equal(t, []string{"public"}, ctor.Modifiers)
	assert.False(t, ctor.IsCompact)
	require.Len(t, ctor.Params, 2)
	assert.Equal(t, "model", ctor.Params[0].Name)
	assert.Equal(t, "power", ctor.Params[1].Name)
	assert.Equal(t, []string{
		"this.model = model;",
		"this.power = power;",
	}, ctor.Body)

	modelAccessor := out.Members[3].(*jast.Method)
	assert.Empty(t, modelAccessor.Annotations)
	assert.Equal(t, "String", modelAccessor.ReturnType.Name)
	assert.Equal(t, []string{"return model;"}, modelAccessor.Body)

	equals := out.Members[5].(*jast.Method)
	assert.Equal(t, []string{"@Override"}, equals.Annotations)
	assert.Equal(t, "boolean", equals.ReturnType.Name)
	require.Len(t, equals.Params, 1)
	assert.Equal(t, "Object", equals.Params[0].Type.Name)
	assert.Equal(t, []string{
		"if (this == obj) { return true; }",
		"if (obj == null || getClass() != obj.getClass()) { return false; }",
		"Vehicle other = (Vehicle) obj;",
		"return Objects.equals(model, other.model) && power == other.power;",
	}, equals.Body)

	hash := out.Members[6].(*jast.Method)
	assert.Equal(t, []string{"return Objects.hash(model, power);"}, hash.Body)

	str := out.Members[7].(*jast.Method)
	assert.Equal(t, []string{`return "Vehicle[model=" + model + ", power=" + power + "]";`}, str.Body)
}

func TestLowerIsIdempotent(t *testing.T) {
	once, err := Lower(vehicleRecord(), nil)
	require.NoError(t, err)

	twice, err := Lower(once, nil)
	require.NoError(t, err)
	assert.Same(t, once, twice, "second application must return its input untouched")
}

func TestLowerDoesNotMutateInput(t *testing.T) {
	in := vehicleRecord()
	_, err := Lower(in, nil)
	require.NoError(t, err)

	assert.Equal(t, jast.KindRecord, in.Kind)
	assert.Len(t, in.Components, 2)
	assert.Empty(t, in.Members)
	assert.False(t, in.HasModifier("final"))
}

func TestLowerGenericRecordUnchanged(t *testing.T) {
	in := vehicleRecord()
	in.TypeParams = []string{"T"}

	out, err := Lower(in, nil)
	require.NoError(t, err)
	assert.Same(t, in, out)
}

func TestLowerNonRecordUnchanged(t *testing.T) {
	in := &jast.Declaration{Kind: jast.KindClass, Name: "Plain"}
	out, err := Lower(in, nil)
	require.NoError(t, err)
	assert.Same(t, in, out)
}

func TestLowerNoComponentsIsInvariantViolation(t *testing.T) {
	in := &jast.Declaration{Kind: jast.KindRecord, Name: "Empty"}
	_, err := Lower(in, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoComponents)
}

func TestLowerCompactConstructorUpgrade(t *testing.T) {
	in := vehicleRecord()
	in.Members = []jast.Member{
		&jast.Constructor{
			Modifiers: []string{"public"},
			Name:      "Vehicle",
			IsCompact: true,
			Body:      []string{`if (power < 0) { throw new IllegalArgumentException("power"); }`},
		},
	}

	out, err := Lower(in, nil)
	require.NoError(t, err)

	ctor := out.Members[2].(*jast.Constructor)
	assert.False(t, ctor.IsCompact)
	require.Len(t, ctor.Params, 2)
	assert.Equal(t, "String", ctor.Params[0].Type.Name)
	assert.Equal(t, "power", ctor.Params[1].Name)
	// Author's validation runs before the appended assignments.
	assert.Equal(t, []string{
		`if (power < 0) { throw new IllegalArgumentException("power"); }`,
		"this.model = model;",
		"this.power = power;",
	}, ctor.Body)

	// The upgraded constructor is canonical; no second one appears.
	ctors := 0
	for _, m := range out.Members {
		if _, ok := m.(*jast.Constructor); ok {
			ctors++
		}
	}
	assert.Equal(t, 1, ctors)
}

func TestLowerCompactConstructorWithParamsFails(t *testing.T) {
	in := vehicleRecord()
	in.Members = []jast.Member{
		&jast.Constructor{
			Name:      "Vehicle",
			IsCompact: true,
			Params:    []jast.Param{{Type: jast.TypeRef{Name: "String"}, Name: "model"}},
		},
	}

	_, err := Lower(in, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCompactMismatch)
}

func TestLowerPreservesHandWrittenMembers(t *testing.T) {
	extraCtor := &jast.Constructor{
		Modifiers: []string{"public"},
		Name:      "Vehicle",
		Params:    []jast.Param{{Type: jast.TypeRef{Name: "String"}, Name: "model"}},
		Body:      []string{"this(model, 0);"},
	}
	helper := &jast.Method{
		Modifiers:  []string{"public"},
		ReturnType: jast.TypeRef{Name: "String"},
		Name:       "describe",
		Body:       []string{`return model + " (" + power + " hp)";`},
		HasBody:    true,
	}
	staticField := &jast.Field{
		Modifiers: []string{"private", "static", "final"},
		Type:      jast.TypeRef{Name: "int"},
		Name:      "MAX_POWER",
		Init:      "10000",
	}

	in := vehicleRecord()
	in.Members = []jast.Member{staticField, extraCtor, helper}

	out, err := Lower(in, nil)
	require.NoError(t, err)

	require.Equal(t, []string{
		"field:MAX_POWER",
		"field:model",
		"field:power",
		"ctor:Vehicle", // canonical, inserted before the existing one
		"ctor:Vehicle", // hand-written single-arg constructor
		"method:model",
		"method:power",
		"method:describe",
		"method:equals",
		"method:hashCode",
		"method:toString",
	}, memberNames(out.Members))

	// Hand-written members survive untouched (same content, not same
	// pointers: the lowering works on a copy).
	keptCtor := out.Members[4].(*jast.Constructor)
	assert.Equal(t, extraCtor.Params, keptCtor.Params)
	assert.Equal(t, extraCtor.Body, keptCtor.Body)
	keptHelper := out.Members[7].(*jast.Method)
	assert.Equal(t, helper.Body, keptHelper.Body)
	keptStatic := out.Members[0].(*jast.Field)
	assert.Equal(t, staticField.Init, keptStatic.Init)
}

func TestLowerAccessorsFollowLastConstructor(t *testing.T) {
	first := &jast.Constructor{
		Modifiers: []string{"public"},
		Name:      "Vehicle",
		Params:    []jast.Param{{Type: jast.TypeRef{Name: "String"}, Name: "model"}},
		Body:      []string{"this(model, 0);"},
	}
	second := &jast.Constructor{
		Modifiers: []string{"public"},
		Name:      "Vehicle",
		Params:    []jast.Param{},
		Body:      []string{`this("unknown", 0);`},
	}

	in := vehicleRecord()
	in.Members = []jast.Member{first, second}

	out, err := Lower(in, nil)
	require.NoError(t, err)

	require.Equal(t, []string{
		"field:model",
		"field:power",
		"ctor:Vehicle", // canonical
		"ctor:Vehicle", // single-arg
		"ctor:Vehicle", // zero-arg (last constructor)
		"method:model",
		"method:power",
		"method:equals",
		"method:hashCode",
		"method:toString",
	}, memberNames(out.Members))
}

func TestLowerKeepsExistingCanonicalConstructor(t *testing.T) {
	canonical := &jast.Constructor{
		Modifiers: []string{"public"},
		Name:      "Vehicle",
		Params: []jast.Param{
			{Type: jast.TypeRef{Name: "String"}, Name: "model"},
			{Type: jast.TypeRef{Name: "int"}, Name: "power"},
		},
		Body: []string{
			"this.model = model.trim();",
			"this.power = Math.max(0, power);",
		},
	}
	in := vehicleRecord()
	in.Members = []jast.Member{canonical}

	out, err := Lower(in, nil)
	require.NoError(t, err)

	var ctors []*jast.Constructor
	for _, m := range out.Members {
		if c, ok := m.(*jast.Constructor); ok {
			ctors = append(ctors, c)
		}
	}
	require.Len(t, ctors, 1)
	assert.Equal(t, canonical.Body, ctors[0].Body)
}

func TestLowerConstructorMatchKeepsTypeArguments(t *testing.T) {
	// A constructor over List<Integer> is not canonical for a List<String>
	// component; signatures compare by declared name, arguments included.
	in := &jast.Declaration{
		Kind: jast.KindRecord,
		Name: "Box",
		Components: []jast.Component{
			{Name: "items", Type: jast.TypeRef{Name: "List<String>"}},
		},
		Members: []jast.Member{
			&jast.Constructor{
				Modifiers: []string{"public"},
				Name:      "Box",
				Params:    []jast.Param{{Type: jast.TypeRef{Name: "List<Integer>"}, Name: "raw"}},
				Body:      []string{"this(convert(raw));"},
			},
		},
	}

	out, err := Lower(in, nil)
	require.NoError(t, err)

	var ctors []*jast.Constructor
	for _, m := range out.Members {
		if c, ok := m.(*jast.Constructor); ok {
			ctors = append(ctors, c)
		}
	}
	require.Len(t, ctors, 2)
	assert.Equal(t, "List<String>", ctors[0].Params[0].Type.Name) // synthesized canonical
	assert.Equal(t, "List<Integer>", ctors[1].Params[0].Type.Name)
}

func TestLowerKeepsExistingAccessor(t *testing.T) {
	accessor := &jast.Method{
		Modifiers:  []string{"public"},
		ReturnType: jast.TypeRef{Name: "String"},
		Name:       "model",
		Body:       []string{"return model.toUpperCase();"},
		HasBody:    true,
	}
	in := vehicleRecord()
	in.Members = []jast.Member{accessor}

	out, err := Lower(in, nil)
	require.NoError(t, err)

	var models []*jast.Method
	for _, m := range out.Members {
		if meth, ok := m.(*jast.Method); ok && meth.Name == "model" {
			models = append(models, meth)
		}
	}
	require.Len(t, models, 1)
	assert.Equal(t, accessor.Body, models[0].Body)
}

func TestLowerKeepsExistingContractMethods(t *testing.T) {
	equals := &jast.Method{
		Annotations: []string{"@Override"},
		Modifiers:   []string{"public"},
		ReturnType:  jast.TypeRef{Name: "boolean"},
		Name:        "equals",
		Params:      []jast.Param{{Type: jast.TypeRef{Name: "Object"}, Name: "o"}},
		Body:        []string{"return this == o;"},
		HasBody:     true,
	}
	in := vehicleRecord()
	in.Members = []jast.Member{equals}

	out, err := Lower(in, nil)
	require.NoError(t, err)

	var equalsMethods []*jast.Method
	for _, m := range out.Members {
		if meth, ok := m.(*jast.Method); ok && meth.Name == "equals" {
			equalsMethods = append(equalsMethods, meth)
		}
	}
	require.Len(t, equalsMethods, 1)
	assert.Equal(t, equals.Body, equalsMethods[0].Body)

	// hashCode and toString are still generated, in order, at the end.
	names := memberNames(out.Members)
	require.GreaterOrEqual(t, len(names), 2)
	assert.Equal(t, "method:hashCode", names[len(names)-2])
	assert.Equal(t, "method:toString", names[len(names)-1])
}

func TestLowerOverrideDetection(t *testing.T) {
	in := vehicleRecord()
	in.Implements = []string{"Powered"}

	out, err := Lower(in, stubResolver{"power": true})
	require.NoError(t, err)

	var model, power *jast.Method
	for _, m := range out.Members {
		if meth, ok := m.(*jast.Method); ok {
			switch meth.Name {
			case "model":
				model = meth
			case "power":
				power = meth
			}
		}
	}
	require.NotNil(t, model)
	require.NotNil(t, power)
	assert.Empty(t, model.Annotations)
	assert.Equal(t, []string{"@Override"}, power.Annotations)
}

func TestLowerDeterministic(t *testing.T) {
	a, err := Lower(vehicleRecord(), nil)
	require.NoError(t, err)
	b, err := Lower(vehicleRecord(), nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
