package i18n

import "testing"

func TestPrinter_Chinese(t *testing.T) {
	p, err := Printer("zh")
	if err != nil {
		t.Fatalf("Printer: %v", err)
	}
	if got := p.Sprintf("Login successful! Welcome %s", "S1"); got != "登录成功! 欢迎S1" {
		t.Errorf("Sprintf = %q", got)
	}
	if got := p.Sprintf("Average: %.2f", 80.0); got != "平均分: 80.00" {
		t.Errorf("Sprintf = %q", got)
	}
}

func TestPrinter_EnglishIsIdentity(t *testing.T) {
	p, err := Printer("en")
	if err != nil {
		t.Fatalf("Printer: %v", err)
	}
	if got := p.Sprintf("Student %s added! Initial password is %s", "Alice", "s123456"); got != "Student Alice added! Initial password is s123456" {
		t.Errorf("Sprintf = %q", got)
	}
}

func TestPrinter_Unsupported(t *testing.T) {
	if _, err := Printer("fr"); err == nil {
		t.Error("expected error for unsupported language")
	}
}
