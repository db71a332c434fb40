package display

import "testing"

func TestRequestFill(t *testing.T) {
	snap := Snapshot{Output: "HDMI-1", Width: "1920", Height: "1080", Rate: "60"}

	tests := []struct {
		name string
		req  Request
		want Request
	}{
		{
			name: "empty request takes everything",
			req:  Request{},
			want: Request{Width: "1920", Height: "1080", Rate: "60", Output: "HDMI-1", Name: "1920x1080_60"},
		},
		{
			name: "given fields win",
			req:  Request{Rate: "75", Output: "DP-1"},
			want: Request{Width: "1920", Height: "1080", Rate: "75", Output: "DP-1", Name: "1920x1080_75"},
		},
		{
			name: "explicit name kept",
			req:  Request{Name: "gaming"},
			want: Request{Width: "1920", Height: "1080", Rate: "60", Output: "HDMI-1", Name: "gaming"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.Fill(snap); got != tt.want {
				t.Errorf("Fill() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSnapshotRequest(t *testing.T) {
	snap := Snapshot{Output: "DP-1", Width: "2560", Height: "1440", Rate: "59.95"}
	want := Request{Width: "2560", Height: "1440", Rate: "59.95", Output: "DP-1", Name: "2560x1440"}
	if got := snap.Request(); got != want {
		t.Errorf("Request() = %+v, want %+v", got, want)
	}
}

func TestSelectSnapshot(t *testing.T) {
	snaps := []Snapshot{{Output: "HDMI-1"}, {Output: "DP-1"}}

	if got, ok := selectSnapshot(snaps, "DP-1"); !ok || got.Output != "DP-1" {
		t.Errorf("selectSnapshot(DP-1) = %+v, %v", got, ok)
	}
	if got, ok := selectSnapshot(snaps, "VGA-1"); !ok || got.Output != "HDMI-1" {
		t.Errorf("selectSnapshot(VGA-1) = %+v, %v, want first snapshot", got, ok)
	}
	if _, ok := selectSnapshot(nil, "HDMI-1"); ok {
		t.Error("selectSnapshot(nil) reported a snapshot")
	}
}
