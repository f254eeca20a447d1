package mail

import "fmt"

// AppointmentConfirmation renders the booking confirmation body.
func AppointmentConfirmation(patientName, appointmentNumber, doctorName, date, timeSlot string) string {
	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
      <h2 style="color: #2563eb;">Appointment Confirmed</h2>
      <p>Dear %s,</p>
      <p>Your appointment has been successfully booked.</p>

      <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <p><strong>Appointment Number:</strong> %s</p>
        <p><strong>Doctor:</strong> %s</p>
        <p><strong>Date:</strong> %s</p>
        <p><strong>Time:</strong> %s</p>
      </div>

      <p>Please arrive 15 minutes before your scheduled time.</p>
      <p>Best regards,<br>e-Appointment Team</p>
    </div>
  `, patientName, appointmentNumber, doctorName, date, timeSlot)
}

// StatusUpdate renders the status change notification body. Confirmed
// appointments get a green panel, everything else red.
func StatusUpdate(patientName, appointmentNumber, status string) string {
	panel := "#fee2e2"
	if status == "Confirmed" {
		panel = "#dcfce7"
	}
	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
      <h2 style="color: #2563eb;">Appointment Update</h2>
      <p>Dear %s,</p>
      <p>The status of your appointment (Ref: %s) has changed.</p>

      <div style="background-color: %s; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <p><strong>New Status:</strong> %s</p>
      </div>

      <p>If you have any questions, please contact support.</p>
      <p>Best regards,<br>e-Appointment Team</p>
    </div>
  `, patientName, appointmentNumber, panel, status)
}

// PasswordReset renders the reset link email body.
func PasswordReset(resetURL string) string {
	return fmt.Sprintf(`
      <h1>You have requested a password reset</h1>
      <p>Please go to this link to reset your password:</p>
      <a href=%s clicktracking=off>%s</a>
  `, resetURL, resetURL)
}
