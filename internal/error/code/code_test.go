package code

import "testing"

// 这些文案会原样展示给设备端和前端，改动会破坏对接方的匹配逻辑
func TestClientFacingMessages(t *testing.T) {
	cases := map[int]string{
		ErrScanOutOfWindow: "Scan falls outside the supported time window (06:00-20:00).",
		ErrCategoryInUse:   "Cannot delete category. It is currently being used by one or more events.",
	}
	for c, want := range cases {
		if got := GetMessage(c); got != want {
			t.Errorf("code %d: 文案不匹配\n got: %q\nwant: %q", c, got, want)
		}
	}
}

func TestUnknownCodeFallsBack(t *testing.T) {
	if got := GetMessage(999999); got == "" {
		t.Error("未知错误码应有兜底文案")
	}
}

func TestStatusMapping(t *testing.T) {
	cases := map[int]int{
		ErrScanOutOfWindow:   422,
		ErrCategoryInUse:     422,
		ErrEmployeeNotFound:  404,
		ErrInvalidCredential: 422,
	}
	for c, want := range cases {
		if got := GetStatus(c); got != want {
			t.Errorf("code %d: HTTP状态应为 %d，实际 %d", c, want, got)
		}
	}
}
