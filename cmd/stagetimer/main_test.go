package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectConnectArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"stagetimer"},
			want: []string{"stagetimer"},
		},
		{
			name: "direct url first token",
			in:   []string{"stagetimer", "ws://127.0.0.1:7110/ws"},
			want: []string{"stagetimer", "output", "--connect", "ws://127.0.0.1:7110/ws"},
		},
		{
			name: "direct url after value flag",
			in:   []string{"stagetimer", "--dir", "./tmp-show", "ws://127.0.0.1:7110/ws"},
			want: []string{"stagetimer", "--dir", "./tmp-show", "output", "--connect", "ws://127.0.0.1:7110/ws"},
		},
		{
			name: "direct url after equals flag",
			in:   []string{"stagetimer", "--dir=./tmp-show", "wss://timer.local/ws"},
			want: []string{"stagetimer", "--dir=./tmp-show", "output", "--connect", "wss://timer.local/ws"},
		},
		{
			name: "direct url after bool flag",
			in:   []string{"stagetimer", "--pretty", "ws://127.0.0.1:7110/ws"},
			want: []string{"stagetimer", "--pretty", "output", "--connect", "ws://127.0.0.1:7110/ws"},
		},
		{
			name: "direct url after double dash",
			in:   []string{"stagetimer", "--dir", "./tmp-show", "--", "ws://127.0.0.1:7110/ws"},
			want: []string{"stagetimer", "--dir", "./tmp-show", "--", "output", "--connect", "ws://127.0.0.1:7110/ws"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"stagetimer", "output", "--connect", "ws://127.0.0.1:7110/ws"},
			want: []string{"stagetimer", "output", "--connect", "ws://127.0.0.1:7110/ws"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"stagetimer", "wat"},
			want: []string{"stagetimer", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectConnectArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectConnectArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
