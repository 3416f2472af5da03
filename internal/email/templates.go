package email

const otpTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #153643;">
  <h2>Welcome to SmartIQ Academy</h2>
  <p>Hi %s,</p>
  <p>Use the code below to verify your email address:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">%s</p>
  <p>The code expires in 10 minutes. If you did not create an account,
  you can safely ignore this email.</p>
</body>
</html>`

const passwordResetTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #153643;">
  <h2>Password Reset</h2>
  <p>You have requested a password reset for your SmartIQ Academy account.
  Click the button below to reset your password:</p>
  <p>
    <a href="%s" target="_blank"
       style="background-color: #4CAF50; color: #ffffff; text-decoration: none;
              padding: 12px 24px; border-radius: 5px; display: inline-block;
              font-weight: bold;">Reset Password</a>
  </p>
  <p>If you did not request this password reset, please ignore this email
  or contact our support team.</p>
  <p style="font-size: 12px; color: #999;">This link will expire in 1 hour.</p>
</body>
</html>`
