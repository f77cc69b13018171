package bits

import "testing"

func TestMask(t *testing.T) {
	tests := []struct {
		width uint
		want  uint32
	}{
		{0, 0},
		{1, 0x1},
		{4, 0xF},
		{10, 0x3FF},
		{31, 0x7FFFFFFF},
		{32, 0xFFFFFFFF},
		{40, 0xFFFFFFFF},
	}
	for _, tt := range tests {
		if got := Mask(tt.width); got != tt.want {
			t.Errorf("Mask(%d) = %#x, want %#x", tt.width, got, tt.want)
		}
	}
}

func TestPackUnpack(t *testing.T) {
	tests := []struct {
		name   string
		value  uint32
		width  uint
		offset uint
		packed uint32
		back   uint32
	}{
		{"zero", 0, 4, 3, 0, 0},
		{"fits", 5, 4, 3, 5 << 3, 5},
		{"top field", 1023, 10, 22, 1023 << 22, 1023},
		{"truncates", 0x1F, 4, 0, 0xF, 0xF},
		{"truncates high", 1024 + 7, 10, 12, 7 << 12, 7},
		{"negative as two's complement", ^uint32(0), 10, 12, 0x3FF << 12, 0x3FF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pack(tt.value, tt.width, tt.offset)
			if got != tt.packed {
				t.Errorf("Pack(%#x, %d, %d) = %#x, want %#x", tt.value, tt.width, tt.offset, got, tt.packed)
			}
			if back := Unpack(got, tt.width, tt.offset); back != tt.back {
				t.Errorf("Unpack(%#x, %d, %d) = %#x, want %#x", got, tt.width, tt.offset, back, tt.back)
			}
		})
	}
}

func TestUnpackIgnoresNeighbors(t *testing.T) {
	word := ^uint32(0)
	if got := Unpack(word, 5, 7); got != 0x1F {
		t.Errorf("Unpack(all ones, 5, 7) = %#x, want 0x1f", got)
	}
	word = Pack(3, 2, 0) | Pack(9, 4, 3)
	if got := Unpack(word, 4, 3); got != 9 {
		t.Errorf("Unpack(word, 4, 3) = %d, want 9", got)
	}
	if got := Unpack(word, 2, 0); got != 3 {
		t.Errorf("Unpack(word, 2, 0) = %d, want 3", got)
	}
}

func TestPackBool(t *testing.T) {
	if got := PackBool(true, 2); got != 4 {
		t.Errorf("PackBool(true, 2) = %d, want 4", got)
	}
	if got := PackBool(false, 2); got != 0 {
		t.Errorf("PackBool(false, 2) = %d, want 0", got)
	}
}

func TestCount(t *testing.T) {
	for mask := uint32(0); mask < 32; mask++ {
		want := 0
		for b := mask; b != 0; b >>= 1 {
			want += int(b & 1)
		}
		if got := Count(mask); got != want {
			t.Errorf("Count(%05b) = %d, want %d", mask, got, want)
		}
	}
	if got := Count(^uint32(0)); got != 32 {
		t.Errorf("Count(all ones) = %d, want 32", got)
	}
}
