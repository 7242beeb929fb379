// Package html holds the email bodies sent by the scheduler
package html

import "fmt"

// AppointmentReminder builds the reminder email body sent the day before an
// appointment
func AppointmentReminder(patientName, doctorName, date, timeSlot, token string) string {
	return fmt.Sprintf(`
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Appointment Reminder</h2>
    <p>Hi %s,</p>
    <p>This is a reminder for your upcoming appointment:</p>
    <table cellpadding="6">
      <tr><td><b>Doctor</b></td><td>%s</td></tr>
      <tr><td><b>Date</b></td><td>%s</td></tr>
      <tr><td><b>Time</b></td><td>%s</td></tr>
      <tr><td><b>Token</b></td><td>%s</td></tr>
    </table>
    <p>Please arrive 15 minutes early. If you cannot make it, cancel or
    reschedule from your patient portal.</p>
    <p>Your clinic team</p>
  </body>
</html>`, patientName, doctorName, date, timeSlot, token)
}
