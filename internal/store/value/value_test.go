package value

import (
	"reflect"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPrimitive, "primitive"},
		{KindObject, "object"},
		{KindArray, "array"},
		{KindInvalid, "invalid"},
		{Kind(99), "invalid"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		wantKind Kind
	}{
		{"string", String("x"), KindPrimitive},
		{"int", Int(42), KindPrimitive},
		{"float", Float(1.5), KindPrimitive},
		{"bool", Bool(true), KindPrimitive},
		{"null", Null(), KindPrimitive},
		{"object", Object(nil), KindObject},
		{"array", Array(), KindArray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Kind(); got != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", got, tt.wantKind)
			}
			if !tt.node.IsValid() {
				t.Error("IsValid() = false for constructed node")
			}
		})
	}
}

func TestNode_IsStructure(t *testing.T) {
	if Object(nil).IsStructure() != true {
		t.Error("object should be a structure")
	}
	if Array().IsStructure() != true {
		t.Error("array should be a structure")
	}
	if Int(1).IsStructure() {
		t.Error("primitive should not be a structure")
	}
	if (Node{}).IsStructure() {
		t.Error("zero node should not be a structure")
	}
}

func TestNode_IsFalse(t *testing.T) {
	if !Bool(false).IsFalse() {
		t.Error("Bool(false).IsFalse() = false")
	}
	if Bool(true).IsFalse() {
		t.Error("Bool(true).IsFalse() = true")
	}
	if Int(0).IsFalse() {
		t.Error("Int(0).IsFalse() = true")
	}
	if Null().IsFalse() {
		t.Error("Null().IsFalse() = true")
	}
}

func TestNode_Keys_Sorted(t *testing.T) {
	n := Object(map[string]Node{
		"zebra": Int(1),
		"apple": Int(2),
		"mango": Int(3),
	})

	want := []string{"apple", "mango", "zebra"}
	if got := n.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestNode_FieldAccess(t *testing.T) {
	n := Object(map[string]Node{"a": Int(1)})

	child, ok := n.Field("a")
	if !ok {
		t.Fatal("Field(a) not found")
	}
	if child.Prim() != int64(1) {
		t.Errorf("Field(a).Prim() = %v, want 1", child.Prim())
	}

	if _, ok := n.Field("missing"); ok {
		t.Error("Field(missing) found")
	}
	if _, ok := Int(1).Field("a"); ok {
		t.Error("Field on primitive found")
	}
}

func TestNode_IndexAccess(t *testing.T) {
	n := Array(Int(10), Int(20))

	elem, ok := n.Index(1)
	if !ok || elem.Prim() != int64(20) {
		t.Errorf("Index(1) = %v, %v; want 20, true", elem.Prim(), ok)
	}

	if _, ok := n.Index(-1); ok {
		t.Error("Index(-1) found")
	}
	if _, ok := n.Index(2); ok {
		t.Error("Index(2) found beyond length")
	}
}

func TestNode_Insert(t *testing.T) {
	tests := []struct {
		name string
		at   int
		want []int64
	}{
		{"front", 0, []int64{9, 1, 2}},
		{"middle", 1, []int64{1, 9, 2}},
		{"end", 2, []int64{1, 2, 9}},
		{"beyond clamps to end", 10, []int64{1, 2, 9}},
		{"negative clamps to front", -3, []int64{9, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Array(Int(1), Int(2)).Insert(tt.at, Int(9))
			if n.Len() != len(tt.want) {
				t.Fatalf("Len() = %d, want %d", n.Len(), len(tt.want))
			}
			for i, want := range tt.want {
				elem, _ := n.Index(i)
				if elem.Prim() != want {
					t.Errorf("element %d = %v, want %d", i, elem.Prim(), want)
				}
			}
		})
	}
}

func TestNode_Clone_Independence(t *testing.T) {
	orig := Object(map[string]Node{
		"nested": Object(map[string]Node{"x": Int(1)}),
		"list":   Array(Int(1), Int(2)),
	})

	clone := orig.Clone()
	if !clone.Equal(orig) {
		t.Fatal("clone not equal to original")
	}

	nested, _ := clone.Field("nested")
	nested.SetField("x", Int(99))
	list, _ := clone.Field("list")
	list.SetIndex(0, Int(99))

	origNested, _ := orig.Field("nested")
	if x, _ := origNested.Field("x"); x.Prim() != int64(1) {
		t.Error("mutating clone leaked into original object")
	}
	origList, _ := orig.Field("list")
	if e, _ := origList.Index(0); e.Prim() != int64(1) {
		t.Error("mutating clone leaked into original array")
	}
}

func TestNode_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{"equal ints", Int(1), Int(1), true},
		{"int vs float", Int(1), Float(1), false},
		{"equal objects", Object(map[string]Node{"a": Int(1)}), Object(map[string]Node{"a": Int(1)}), true},
		{"different keys", Object(map[string]Node{"a": Int(1)}), Object(map[string]Node{"b": Int(1)}), false},
		{"equal arrays", Array(Int(1), Int(2)), Array(Int(1), Int(2)), true},
		{"different length", Array(Int(1)), Array(Int(1), Int(2)), false},
		{"object vs array", Object(nil), Array(), false},
		{"nulls", Null(), Null(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
