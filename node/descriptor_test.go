package node

import (
	"strings"
	"testing"
	"unsafe"
)

func TestDescriptorSize(t *testing.T) {
	if got := unsafe.Sizeof(Descriptor(0)); got != Size {
		t.Errorf("sizeof(Descriptor) = %d, want %d", got, Size)
	}
}

func TestClear(t *testing.T) {
	d := Descriptor(0xDEADBEEF)
	d.Clear()
	if d != 0 {
		t.Fatalf("Clear() left %#x", uint32(d))
	}
	if got := d.Type(); got != TypeRegular {
		t.Errorf("Type() = %v, want %v", got, TypeRegular)
	}
	if d.Depth() != 0 || d.U() != 0 || d.V() != 0 {
		t.Errorf("cleared descriptor decodes as depth=%d u=%d v=%d, want zeros", d.Depth(), d.U(), d.V())
	}
}

func TestSetRegularRoundTrip(t *testing.T) {
	var d Descriptor
	for depth := 0; depth <= MaxDepth; depth++ {
		for boundary := 0; boundary <= MaxBoundary; boundary++ {
			for _, crease := range []bool{false, true} {
				u, v := (depth*67+boundary)%1024, (boundary*31+depth)%1024
				d.SetRegular(crease, depth, boundary, u, v)
				if d.Type() != TypeRegular || d.Depth() != depth || d.BoundaryMask() != boundary ||
					d.U() != u || d.V() != v || d.HasSharpness() != crease {
					t.Fatalf("SetRegular(%t, %d, %d, %d, %d) decoded as %v", crease, depth, boundary, u, v, d)
				}
			}
		}
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	var d Descriptor
	for u := 0; u <= MaxCoord; u++ {
		v := MaxCoord - u
		d.SetRegular(false, 10, 0, u, v)
		if d.U() != u || d.V() != v {
			t.Fatalf("SetRegular u=%d v=%d decoded as u=%d v=%d", u, v, d.U(), d.V())
		}
		d.SetEnd(10, 0, v, u)
		if d.U() != v || d.V() != u {
			t.Fatalf("SetEnd u=%d v=%d decoded as u=%d v=%d", v, u, d.U(), d.V())
		}
	}
}

func TestSetEndRoundTrip(t *testing.T) {
	var d Descriptor
	for depth := 0; depth <= MaxDepth; depth++ {
		for boundary := 0; boundary <= MaxBoundary; boundary++ {
			d.SetEnd(depth, boundary, 1023, 512)
			if d.Type() != TypeEnd || d.Depth() != depth || d.BoundaryMask() != boundary ||
				d.U() != 1023 || d.V() != 512 {
				t.Fatalf("SetEnd(%d, %d, 1023, 512) decoded as %v", depth, boundary, d)
			}
			if uint32(d)&(1<<flagOffset) != 0 {
				t.Fatalf("SetEnd set the unused flag bit: %#x", uint32(d))
			}
		}
	}
}

func TestSetRecursiveRoundTrip(t *testing.T) {
	var d Descriptor
	for depth := 0; depth <= MaxDepth; depth++ {
		for _, endcap := range []bool{false, true} {
			u, v := depth*61, 1023-depth*17
			d.SetRecursive(depth, u, v, endcap)
			if d.Type() != TypeRecursive || d.Depth() != depth || d.U() != u || d.V() != v ||
				d.HasEndcap() != endcap {
				t.Fatalf("SetRecursive(%d, %d, %d, %t) decoded as %v", depth, u, v, endcap, d)
			}
			if d.BoundaryMask() != 0 {
				t.Fatalf("SetRecursive left boundary bits %05b", d.BoundaryMask())
			}
		}
	}
}

func TestSetTerminalRoundTrip(t *testing.T) {
	var d Descriptor
	for depth := 0; depth <= MaxDepth; depth++ {
		for ev := 0; ev <= MaxEvIndex; ev++ {
			for _, endcap := range []bool{false, true} {
				d.SetTerminal(depth, ev, ev*64, depth*64, endcap)
				if d.Type() != TypeTerminal || d.Depth() != depth || d.EvIndex() != ev ||
					d.U() != ev*64 || d.V() != depth*64 || d.HasEndcap() != endcap {
					t.Fatalf("SetTerminal(%d, %d, %d, %d, %t) decoded as %v", depth, ev, ev*64, depth*64, endcap, d)
				}
				if uint32(d)&(1<<boundaryOffset) != 0 {
					t.Fatalf("SetTerminal set unused bit 7: %#x", uint32(d))
				}
			}
		}
	}
}

func TestSetTerminalScenario(t *testing.T) {
	var d Descriptor
	d.SetTerminal(1, 2, 0, 0, true)
	if got := d.Type(); got != TypeTerminal {
		t.Errorf("Type() = %v, want terminal", got)
	}
	if got := d.EvIndex(); got != 2 {
		t.Errorf("EvIndex() = %d, want 2", got)
	}
	if !d.HasEndcap() {
		t.Error("HasEndcap() = false, want true")
	}
}

func TestSetOverwritesWord(t *testing.T) {
	var d Descriptor
	d.SetRegular(true, 15, 31, 1023, 1023)
	d.SetRecursive(1, 0, 0, false)
	if d.Type() != TypeRecursive || d.HasEndcap() || d.BoundaryMask() != 0 || d.U() != 0 || d.V() != 0 {
		t.Errorf("second Set did not overwrite the word: %v (%#x)", d, uint32(d))
	}
}

func TestFlagBitIsShared(t *testing.T) {
	var d Descriptor
	d.SetRegular(true, 0, 0, 0, 0)
	if !d.HasEndcap() {
		t.Error("HasEndcap() must read the single-crease bit")
	}
	d.SetRecursive(0, 0, 0, true)
	if !d.HasSharpness() {
		t.Error("HasSharpness() must read the end-cap bit")
	}
}

func TestBoundaryCount(t *testing.T) {
	var d Descriptor
	for mask := 0; mask <= MaxBoundary; mask++ {
		want := 0
		for b := mask; b != 0; b >>= 1 {
			want += b & 1
		}
		d.SetRegular(false, 3, mask, 0, 0)
		if got := d.BoundaryCount(); got != want {
			t.Errorf("BoundaryCount(%05b) = %d, want %d", mask, got, want)
		}
		d.SetEnd(3, mask, 0, 0)
		if got := d.BoundaryCount(); got != want {
			t.Errorf("End BoundaryCount(%05b) = %d, want %d", mask, got, want)
		}
	}

	d.SetEnd(0, 0b11111, 0, 0)
	if got := d.BoundaryCount(); got != 5 {
		t.Errorf("BoundaryCount(0b11111) = %d, want 5", got)
	}
	d.SetEnd(0, 0, 0, 0)
	if got := d.BoundaryCount(); got != 0 {
		t.Errorf("BoundaryCount(0) = %d, want 0", got)
	}
}

func TestBitLayout(t *testing.T) {
	var d Descriptor
	d.SetRegular(true, 0b1010, 0b10101, 0b1100110011, 0b1011110001)
	want := uint32(0b1011110001)<<22 | uint32(0b1100110011)<<12 | 0b10101<<7 | 0b1010<<3 | 1<<2 | 0
	if uint32(d) != want {
		t.Errorf("SetRegular word = %032b, want %032b", uint32(d), want)
	}

	d.SetTerminal(3, 2, 1, 1, false)
	want = 1<<22 | 1<<12 | 2<<8 | 3<<3 | uint32(TypeTerminal)
	if uint32(d) != want {
		t.Errorf("SetTerminal word = %032b, want %032b", uint32(d), want)
	}
}

func TestEvIndexOffset(t *testing.T) {
	var d Descriptor
	d.SetTerminal(0, 1, 0, 0, false)
	if got := uint32(d); got != 0x102 {
		t.Errorf("SetTerminal(0, 1, 0, 0, false) = %#x, want 0x102", got)
	}

	// Bit 7 is outside the ev index range.
	d = Descriptor(uint32(TypeTerminal) | 1<<7)
	if got := d.EvIndex(); got != 0 {
		t.Errorf("EvIndex() with only bit 7 set = %d, want 0", got)
	}
	d = Descriptor(uint32(TypeTerminal) | MaxEvIndex<<evIndexOffset)
	if got := d.EvIndex(); got != MaxEvIndex {
		t.Errorf("EvIndex() with bits 8-11 set = %d, want %d", got, MaxEvIndex)
	}
	if d.BoundaryMask()&1 != 0 {
		t.Error("ev index must not reach bit 7")
	}
}

func TestDescriptorString(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"regular", Regular{SingleCrease: true, Depth: 2, Boundary: 3, U: 1, V: 3}, "regular{depth:2 u:1 v:3 boundary:00011 crease:true}"},
		{"end", End{Depth: 4, Boundary: 16, U: 7, V: 8}, "end{depth:4 u:7 v:8 boundary:10000}"},
		{"recursive", Recursive{Depth: 1, U: 1, V: 0, HasEndcap: true}, "recursive{depth:1 u:1 v:0 endcap:true}"},
		{"terminal", Terminal{Depth: 5, EvIndex: 3, U: 2, V: 9}, "terminal{depth:5 u:2 v:9 ev:3 endcap:false}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Encode().String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	names := map[Type]string{
		TypeRegular:   "regular",
		TypeRecursive: "recursive",
		TypeTerminal:  "terminal",
		TypeEnd:       "end",
	}
	for typ, want := range names {
		if got := typ.String(); got != want {
			t.Errorf("Type(%d).String() = %q, want %q", typ, got, want)
		}
	}
	if got := Type(9).String(); !strings.HasPrefix(got, "Type(") {
		t.Errorf("unknown type String() = %q", got)
	}
}

func TestEndCapType(t *testing.T) {
	tests := []struct {
		e    EndCapType
		name string
		cps  int
	}{
		{EndCapNone, "none", 0},
		{EndCapBilinear, "bilinear", 4},
		{EndCapBSpline, "bspline", 16},
		{EndCapGregory, "gregory", 20},
		{EndCapType(7), "EndCapType(7)", 0},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.e.ControlPoints(); got != tt.cps {
			t.Errorf("%s.ControlPoints() = %d, want %d", tt.name, got, tt.cps)
		}
	}
}

func TestWords(t *testing.T) {
	nodes := []Descriptor{
		Regular{Depth: 1, U: 1}.Encode(),
		Terminal{Depth: 2, EvIndex: 1, U: 3, V: 2, HasEndcap: true}.Encode(),
	}
	words := Words(nodes)
	if len(words) != len(nodes) {
		t.Fatalf("len(Words) = %d, want %d", len(words), len(nodes))
	}
	for i := range nodes {
		if words[i] != uint32(nodes[i]) {
			t.Errorf("Words[%d] = %#x, want %#x", i, words[i], uint32(nodes[i]))
		}
	}

	words[0] = uint32(End{Depth: 3}.Encode())
	if nodes[0].Type() != TypeEnd {
		t.Error("Words must share memory with the descriptor slice")
	}

	back := FromWords(words)
	if &back[0] != &nodes[0] {
		t.Error("FromWords must share memory with the word slice")
	}
	if Words(nil) != nil || FromWords(nil) != nil {
		t.Error("empty input must return nil")
	}
}

func BenchmarkSetRegular(b *testing.B) {
	var d Descriptor
	for i := 0; i < b.N; i++ {
		d.SetRegular(i&1 == 0, i&15, i&31, i&1023, (i>>10)&1023)
	}
	_ = d
}

func BenchmarkDecode(b *testing.B) {
	d := Terminal{Depth: 4, EvIndex: 2, U: 9, V: 3, HasEndcap: true}.Encode()
	var n Node
	for i := 0; i < b.N; i++ {
		n = Decode(d)
	}
	_ = n
}
