package domain

import "testing"

func TestDirectoryNameKnownLabels(t *testing.T) {
	cases := map[DocumentType]string{
		TypeInvoice:  "Invoices",
		TypeProtocol: "Protocols",
		TypeReport:   "Reports",
	}
	for label, want := range cases {
		if got := label.DirectoryName(); got != want {
			t.Errorf("DirectoryName(%s) = %q, want %q", label, got, want)
		}
	}
}

func TestDirectoryNameUnknownLabelPluralizes(t *testing.T) {
	if got := DocumentType("Foo").DirectoryName(); got != "Foos" {
		t.Fatalf("DirectoryName(Foo) = %q, want Foos", got)
	}
}

func TestCandidateLabelsStableOrder(t *testing.T) {
	labels := CandidateLabels()
	want := []DocumentType{TypeInvoice, TypeProtocol, TypeReport}
	if len(labels) != len(want) {
		t.Fatalf("expected %d labels, got %d", len(want), len(labels))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("label[%d] = %s, want %s", i, labels[i], want[i])
		}
	}
}
