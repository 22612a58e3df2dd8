package handlers

// HandlerBundle aggregates the per-domain handlers so route registration
// takes a single value.
type HandlerBundle struct {
	Auth         *AuthHandler
	Appointments *AppointmentHandler
	Requests     *RequestHandler
	Doctors      *DoctorHandler
	Patients     *PatientHandler
	Calendar     *CalendarHandler
	Stats        *StatsHandler
}
