package fst

import "testing"

func TestNodeEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		n     node
		isMap bool
	}{
		{"leaf final", node{Final: true}, false},
		{"leaf non-final", node{}, false},
		{"chain", node{Transitions: []transition{{Byte: 'a', Target: 0}}}, false},
		{"branch", node{Transitions: []transition{
			{Byte: 'a', Target: 0},
			{Byte: 'b', Target: 0},
			{Byte: 'c', Target: 0},
		}}, false},
		{"map leaf final", node{Final: true, FinalOutput: 42}, true},
		{"map branch with deltas", node{Transitions: []transition{
			{Byte: 'a', OutputDelta: 5, Target: 0},
			{Byte: 'b', OutputDelta: 9, Target: 0},
		}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const selfOffset = 1000
			encoded := encodeNode(nil, tt.n, selfOffset, tt.isMap)
			data := make([]byte, selfOffset)
			data = append(data, encoded...)

			got, err := decodeNode(data, selfOffset, tt.isMap)
			if err != nil {
				t.Fatalf("decodeNode: %v", err)
			}
			if got.Final != tt.n.Final {
				t.Errorf("Final = %v, want %v", got.Final, tt.n.Final)
			}
			if tt.isMap && got.FinalOutput != tt.n.FinalOutput {
				t.Errorf("FinalOutput = %d, want %d", got.FinalOutput, tt.n.FinalOutput)
			}
			if len(got.Transitions) != len(tt.n.Transitions) {
				t.Fatalf("len(Transitions) = %d, want %d", len(got.Transitions), len(tt.n.Transitions))
			}
			for i, wt := range tt.n.Transitions {
				gt := got.Transitions[i]
				if gt.Byte != wt.Byte || gt.Target != wt.Target {
					t.Errorf("Transitions[%d] = %+v, want byte=%v target=%v", i, gt, wt.Byte, wt.Target)
				}
				if tt.isMap && gt.OutputDelta != wt.OutputDelta {
					t.Errorf("Transitions[%d].OutputDelta = %d, want %d", i, gt.OutputDelta, wt.OutputDelta)
				}
			}
		})
	}
}

func TestFindTransition(t *testing.T) {
	n := node{Transitions: []transition{
		{Byte: 'a'}, {Byte: 'c'}, {Byte: 'f'},
	}}
	for _, b := range []byte{'a', 'c', 'f'} {
		if _, ok := findTransition(n, b); !ok {
			t.Errorf("findTransition(%q) not found", b)
		}
	}
	for _, b := range []byte{0, 'b', 'z'} {
		if _, ok := findTransition(n, b); ok {
			t.Errorf("findTransition(%q) unexpectedly found", b)
		}
	}
}

func TestEncodeNodePanicsOnForwardTarget(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for forward target offset")
		}
	}()
	encodeNode(nil, node{Transitions: []transition{{Byte: 'a', Target: 100}}}, 10, false)
}
