package payroll

import (
	"context"
	"strings"
	"testing"
	"time"

	"staffhub/internal/domain/people"
)

type fakeEmployees struct {
	byID map[string]people.Employee
}

func (f *fakeEmployees) GetEmployee(ctx context.Context, id string) (people.Employee, error) {
	employee, ok := f.byID[id]
	if !ok {
		return people.Employee{}, people.ErrNotFound
	}
	return employee, nil
}

type fakeUploader struct {
	uploads map[string][]byte
}

func (f *fakeUploader) Upload(path string, data []byte) (string, error) {
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[path] = data
	return "http://files.local/" + path, nil
}

func newTestService(t *testing.T) (*Service, *fakeUploader) {
	t.Helper()
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	employees := &fakeEmployees{byID: map[string]people.Employee{
		"e1": {ID: "e1", Name: "Carmen", Locale: "Brutal Soul", Salary: 24000},
	}}
	uploader := &fakeUploader{}
	return NewService(store, employees, uploader), uploader
}

func TestUpsertDefaultsToMonthlySalary(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	nomina, err := svc.Upsert(ctx, Nomina{
		EmployeeID:  "e1",
		PeriodStart: "2024-07-01",
		PeriodEnd:   "2024-07-31",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if nomina.Deposited != 2000 || nomina.Amount != 2000 {
		t.Fatalf("expected salary/12 default, got %+v", nomina)
	}
	if nomina.EmployeeName != "Carmen" || nomina.Locale != "Brutal Soul" {
		t.Fatalf("employee fields not resolved: %+v", nomina)
	}
	if nomina.State != StatePendiente {
		t.Fatalf("new payslip must start Pendiente, got %s", nomina.State)
	}
}

func TestUpsertReplacesSamePeriod(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	base := Nomina{EmployeeID: "e1", PeriodStart: "2024-07-01", PeriodEnd: "2024-07-31"}
	if _, err := svc.Upsert(ctx, base); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	base.Deposited = 1500
	base.Cash = 300
	if _, err := svc.Upsert(ctx, base); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rows, err := svc.List(ctx, "Brutal Soul", time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row per period, got %d", len(rows))
	}
	if rows[0].Amount != 1800 {
		t.Fatalf("total must be deposited + cash, got %v", rows[0].Amount)
	}
}

func TestUpsertRejectsBadPeriod(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Upsert(ctx, Nomina{EmployeeID: "e1", PeriodStart: "2024-07-31", PeriodEnd: "2024-07-01"})
	if err == nil {
		t.Fatalf("inverted period must be rejected")
	}
}

func TestStateNeverMovesBack(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	nomina, err := svc.Upsert(ctx, Nomina{EmployeeID: "e1", PeriodStart: "2024-07-01", PeriodEnd: "2024-07-31"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	sent, err := svc.SetState(ctx, nomina.ID, StateEnviada)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if sent.State != StateEnviada {
		t.Fatalf("state not advanced: %s", sent.State)
	}

	if _, err := svc.SetState(ctx, nomina.ID, StatePendiente); err == nil {
		t.Fatalf("rollback must be rejected")
	}
}

func TestGeneratePayslipUploadsAndAdvances(t *testing.T) {
	ctx := context.Background()
	svc, uploader := newTestService(t)

	nomina, err := svc.Upsert(ctx, Nomina{EmployeeID: "e1", PeriodStart: "2024-07-01", PeriodEnd: "2024-07-31"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	generated, err := svc.GeneratePayslip(ctx, nomina.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(generated.FileURL, "http://files.local/nominas/") {
		t.Fatalf("file URL wrong: %q", generated.FileURL)
	}
	if generated.State != StateSubida {
		t.Fatalf("payslip with a PDF must be Subida, got %s", generated.State)
	}

	data := uploader.uploads["nominas/"+nomina.ID+".pdf"]
	if len(data) == 0 || string(data[:4]) != "%PDF" {
		t.Fatalf("uploaded bytes are not a PDF")
	}

	// Generating again for an Enviada payslip must not pull it back.
	if _, err := svc.SetState(ctx, nomina.ID, StateEnviada); err != nil {
		t.Fatalf("send: %v", err)
	}
	again, err := svc.GeneratePayslip(ctx, nomina.ID)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if again.State != StateEnviada {
		t.Fatalf("regeneration must keep Enviada, got %s", again.State)
	}
}
