package value

import (
	"bytes"
	"errors"
	"testing"
)

func TestFromJSON(t *testing.T) {
	doc := []byte(`{
		"name": "demo",
		"count": 3,
		"ratio": 0.5,
		"active": true,
		"missing": null,
		"tags": ["a", "b"],
		"nested": {"deep": {"leaf": 1}}
	}`)

	n, err := FromJSON(doc)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if n.Kind() != KindObject {
		t.Fatalf("Kind() = %v, want object", n.Kind())
	}

	name, _ := n.Field("name")
	if name.Prim() != "demo" {
		t.Errorf("name = %v, want demo", name.Prim())
	}

	count, _ := n.Field("count")
	if count.Prim() != int64(3) {
		t.Errorf("count = %v (%T), want int64(3)", count.Prim(), count.Prim())
	}

	ratio, _ := n.Field("ratio")
	if ratio.Prim() != 0.5 {
		t.Errorf("ratio = %v, want 0.5", ratio.Prim())
	}

	active, _ := n.Field("active")
	if active.Prim() != true {
		t.Errorf("active = %v, want true", active.Prim())
	}

	missing, _ := n.Field("missing")
	if missing.Kind() != KindPrimitive || missing.Prim() != nil {
		t.Errorf("missing = %v, want null primitive", missing)
	}

	tags, _ := n.Field("tags")
	if tags.Kind() != KindArray || tags.Len() != 2 {
		t.Fatalf("tags kind=%v len=%d, want array of 2", tags.Kind(), tags.Len())
	}

	nested, _ := n.Field("nested")
	deep, _ := nested.Field("deep")
	leaf, _ := deep.Field("leaf")
	if leaf.Prim() != int64(1) {
		t.Errorf("nested.deep.leaf = %v, want 1", leaf.Prim())
	}
}

func TestFromJSON_Invalid(t *testing.T) {
	if _, err := FromJSON([]byte(`{"broken":`)); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("FromJSON(broken) error = %v, want ErrInvalidJSON", err)
	}
}

func TestNode_JSON_RoundTrip(t *testing.T) {
	orig := Object(map[string]Node{
		"name":  String("demo"),
		"count": Int(3),
		"flag":  Bool(false),
		"none":  Null(),
		"list":  Array(Int(1), Object(map[string]Node{"x": Int(2)})),
		"empty": Object(nil),
	})

	b, err := orig.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	back, err := FromJSON(b)
	if err != nil {
		t.Fatalf("FromJSON(JSON()) error = %v", err)
	}
	if !back.Equal(orig) {
		t.Errorf("round trip mismatch:\n got %s\nwant %s", back, orig)
	}
}

func TestNode_JSON_Primitive(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{Int(42), "42"},
		{String("x"), `"x"`},
		{Bool(true), "true"},
		{Null(), "null"},
	}

	for _, tt := range tests {
		b, err := tt.node.JSON()
		if err != nil {
			t.Fatalf("JSON() error = %v", err)
		}
		if string(b) != tt.want {
			t.Errorf("JSON() = %s, want %s", b, tt.want)
		}
	}
}

func TestNode_JSON_InvalidNode(t *testing.T) {
	if _, err := (Node{}).JSON(); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("zero node JSON() error = %v, want ErrInvalidNode", err)
	}
}

func TestNode_JSON_Deterministic(t *testing.T) {
	n := Object(map[string]Node{
		"b": Int(2),
		"a": Int(1),
		"c": Int(3),
	})

	first, err := n.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := n.JSON()
		if err != nil {
			t.Fatalf("JSON() error = %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("JSON() not deterministic: %s vs %s", first, again)
		}
	}
}

func TestNode_PrettyJSON(t *testing.T) {
	n := Object(map[string]Node{"a": Int(1)})
	b, err := n.PrettyJSON()
	if err != nil {
		t.Fatalf("PrettyJSON() error = %v", err)
	}
	if !bytes.Contains(b, []byte("\n")) {
		t.Errorf("PrettyJSON() = %q, want indented output", b)
	}
}
