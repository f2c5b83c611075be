package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/citasalud/mobile-core/internal/api"
	appconfig "github.com/citasalud/mobile-core/internal/config"
	"github.com/citasalud/mobile-core/internal/observability/metrics"
	"github.com/citasalud/mobile-core/internal/schedule"
	"github.com/citasalud/mobile-core/internal/search"
	"github.com/citasalud/mobile-core/internal/session"
	"github.com/citasalud/mobile-core/pkg/logging"
)

const usage = `citactl - clinic appointment client

Usage:
  citactl <command> [flags]

Commands:
  login        -email -password
  logout
  specialties
  doctors      [-especialidad id]
  patients     [-q texto]  (sin -q lee consultas de stdin, una por linea)
  slots
  available    -doctor id
  check        -doctor id -fecha YYYY-MM-DD -hora HH:mm
  book         -paciente id -doctor id -fecha YYYY-MM-DD -hora HH:mm [-motivo texto]
  cancel       -cita id [-si]
  confirm      -cita id
  reschedule   -cita id -fecha YYYY-MM-DD -hora HH:mm
  list         [-hoy] [-pendientes]
`

type app struct {
	cfg     *appconfig.Config
	logger  *logging.Logger
	client  *api.Client
	manager *schedule.Manager
	checker *schedule.Checker
	store   *session.SQLiteStore
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	// Local overrides live in .env during development.
	_ = godotenv.Load()
	cfg, err := appconfig.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)

	store, err := session.OpenSQLiteStore(cfg.SessionDBPath)
	if err != nil {
		logger.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	sess := session.NewManager(store)

	var apiMetrics *metrics.APIMetrics
	if cfg.MetricsEnabled {
		apiMetrics = metrics.NewAPIMetrics(nil)
	}
	client := api.NewClient(cfg.APIBaseURL, sess, logger,
		api.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		api.WithMetrics(apiMetrics))
	checker := schedule.NewChecker(client, logger)
	manager := schedule.NewManager(client, checker, sess, logger)

	a := &app{cfg: cfg, logger: logger, client: client, manager: manager, checker: checker, store: store}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.client.Logout()
	case "specialties":
		return a.specialties(ctx)
	case "doctors":
		return a.doctors(ctx, args)
	case "patients":
		return a.patients(ctx, args)
	case "slots":
		return a.slots()
	case "available":
		return a.available(ctx, args)
	case "check":
		return a.check(ctx, args)
	case "book":
		return a.book(ctx, args)
	case "cancel":
		return a.cancel(ctx, args)
	case "confirm":
		return a.confirm(ctx, args)
	case "reschedule":
		return a.reschedule(ctx, args)
	case "list":
		return a.list(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("login: -email and -password are required")
	}
	user, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Bienvenido %s\n", user.Name)
	return nil
}

func (a *app) specialties(ctx context.Context) error {
	specialties, err := a.client.Specialties(ctx)
	if err != nil {
		return err
	}
	for _, s := range specialties {
		fmt.Printf("%s\t%s\n", s.ID, s.Name)
	}
	return nil
}

func (a *app) doctors(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("doctors", flag.ExitOnError)
	specialtyID := fs.String("especialidad", "", "filter by specialty id")
	_ = fs.Parse(args)

	var (
		doctors []api.Doctor
		err     error
	)
	if *specialtyID != "" {
		doctors, err = a.client.DoctorsBySpecialty(ctx, *specialtyID)
	} else {
		doctors, err = a.client.Doctors(ctx)
	}
	if err != nil {
		return err
	}
	for _, d := range doctors {
		fmt.Printf("%s\t%s\n", d.ID, d.Name)
	}
	return nil
}

func (a *app) patients(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("patients", flag.ExitOnError)
	query := fs.String("q", "", "search query; omit to read queries from stdin")
	_ = fs.Parse(args)

	if *query != "" {
		return a.printPatients(ctx, *query)
	}
	fmt.Println("Buscar paciente (linea vacia para salir):")
	return a.patientSearchLoop(ctx, os.Stdin)
}

// patientSearchLoop reads one query per line and debounces the lookups the
// way the search box debounces keystrokes: typing a refined query before the
// delay elapses drops the previous one. EOF or an empty line flushes the
// pending lookup and exits.
func (a *app) patientSearchLoop(ctx context.Context, in io.Reader) error {
	deb := search.NewDebouncer(a.cfg.SearchDebounce)
	defer deb.Stop()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			break
		}
		deb.Do(func() {
			if err := a.printPatients(ctx, query); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		})
	}
	deb.Flush()
	return scanner.Err()
}

func (a *app) printPatients(ctx context.Context, query string) error {
	patients, err := a.client.SearchPatients(ctx, query)
	if err != nil {
		return err
	}
	if len(patients) == 0 {
		fmt.Println("Sin resultados")
		return nil
	}
	for _, p := range patients {
		fmt.Printf("%s\t%s\t%s\n", p.ID, p.Name, p.Document)
	}
	return nil
}

func (a *app) slots() error {
	window := schedule.Window{
		StartHour:    a.cfg.SlotStartHour,
		EndHour:      a.cfg.SlotEndHour,
		IntervalMins: a.cfg.SlotIntervalMins,
	}
	slots, err := schedule.Slots(window)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		fmt.Println(slot)
	}
	return nil
}

func (a *app) available(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("available", flag.ExitOnError)
	doctorID := fs.String("doctor", "", "doctor id")
	_ = fs.Parse(args)

	if *doctorID == "" {
		return fmt.Errorf("available: -doctor is required")
	}
	slots, err := a.client.AvailableTimes(ctx, *doctorID)
	if err != nil {
		return err
	}
	for _, date := range schedule.DistinctDates(slots) {
		fmt.Println(date)
		for _, t := range schedule.TimesFor(slots, date) {
			fmt.Printf("  %s\n", t)
		}
	}
	return nil
}

func (a *app) check(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	doctorID := fs.String("doctor", "", "doctor id")
	fecha := fs.String("fecha", "", "date YYYY-MM-DD")
	hora := fs.String("hora", "", "time HH:mm")
	_ = fs.Parse(args)

	date, t, err := parseSlot(*fecha, *hora)
	if err != nil {
		return err
	}
	result := a.checker.Check(ctx, *doctorID, date, t)
	fmt.Println(result.Message)
	if !result.Available {
		os.Exit(1)
	}
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	patientID := fs.String("paciente", "", "patient id")
	doctorID := fs.String("doctor", "", "doctor id")
	fecha := fs.String("fecha", "", "date YYYY-MM-DD")
	hora := fs.String("hora", "", "time HH:mm")
	motivo := fs.String("motivo", "", "reason for the visit")
	_ = fs.Parse(args)

	date, t, err := parseSlot(*fecha, *hora)
	if err != nil {
		return err
	}
	result := a.manager.Create(ctx, schedule.CreateInput{
		PatientID:   *patientID,
		DoctorID:    *doctorID,
		Date:        date,
		Time:        t,
		Description: *motivo,
	})
	return report(result)
}

func (a *app) cancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	citaID := fs.Int64("cita", 0, "appointment id")
	confirmed := fs.Bool("si", false, "confirm cancellation")
	_ = fs.Parse(args)

	return report(a.manager.Cancel(ctx, *citaID, *confirmed))
}

func (a *app) confirm(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("confirm", flag.ExitOnError)
	citaID := fs.Int64("cita", 0, "appointment id")
	_ = fs.Parse(args)

	return report(a.manager.UpdateStatus(ctx, *citaID, schedule.StatusConfirmed))
}

func (a *app) reschedule(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reschedule", flag.ExitOnError)
	citaID := fs.Int64("cita", 0, "appointment id")
	fecha := fs.String("fecha", "", "new date YYYY-MM-DD")
	hora := fs.String("hora", "", "new time HH:mm")
	_ = fs.Parse(args)

	date, t, err := parseSlot(*fecha, *hora)
	if err != nil {
		return err
	}
	return report(a.manager.Reschedule(ctx, *citaID, date, t))
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	today := fs.Bool("hoy", false, "today's appointments (staff)")
	pending := fs.Bool("pendientes", false, "pending queue (staff)")
	_ = fs.Parse(args)

	switch {
	case *today:
		appts, result := a.manager.Today(ctx)
		if !result.Success {
			return fmt.Errorf("%s", result.Message)
		}
		printAppointments(appts)
	case *pending:
		appts, result := a.manager.PendingQueue(ctx)
		if !result.Success {
			return fmt.Errorf("%s", result.Message)
		}
		printAppointments(appts)
	default:
		mine, result := a.manager.Mine(ctx)
		if !result.Success {
			return fmt.Errorf("%s", result.Message)
		}
		fmt.Println("Pendientes:")
		printAppointments(mine.Pending)
		fmt.Println("Confirmadas:")
		printAppointments(mine.Confirmed)
	}
	return nil
}

func printAppointments(appts []schedule.Appointment) {
	for _, appt := range appts {
		fmt.Printf("%s\t%s %s\tdoctor=%s\t%s\n",
			strconv.FormatInt(appt.ID, 10), appt.Date, appt.Time, appt.DoctorID, appt.Status)
	}
}

func parseSlot(fecha, hora string) (schedule.Date, schedule.TimeOfDay, error) {
	date, err := schedule.ParseDate(fecha)
	if err != nil {
		return schedule.Date{}, schedule.TimeOfDay{}, err
	}
	t, err := schedule.ParseTimeOfDay(hora)
	if err != nil {
		return schedule.Date{}, schedule.TimeOfDay{}, err
	}
	return date, t, nil
}

func report(result schedule.Result) error {
	fmt.Println(result.Message)
	if !result.Success {
		os.Exit(1)
	}
	return nil
}
