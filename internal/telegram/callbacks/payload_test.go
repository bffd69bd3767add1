package callbacks

import "testing"

func TestAction(t *testing.T) {
	cases := []struct {
		data string
		want string
	}{
		{"complete_42", "complete"},
		{"status_42_DONE", "status"},
		{"edit_7", "edit"},
		{"back_to_tasks", "back"},
		{"separator", "separator"},
		{"", ""},
		{"_weird", "_weird"},
	}
	for _, tc := range cases {
		if got := Action(tc.data); got != tc.want {
			t.Errorf("Action(%q) = %q, want %q", tc.data, got, tc.want)
		}
	}
}
