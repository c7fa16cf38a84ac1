package handler

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// Renderer serves the storefront's handful of HTML pages through echo's
// renderer hook. html/template does the escaping; the email in particular
// is attacker-controlled query input.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.New("pages").Parse(pageTemplates)),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

const pageTemplates = `
{{define "style"}}<style>
	body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; text-align: center; padding: 40px; background-color: #f4f6f8; color: #333; }
	.container { max-width: 700px; margin: auto; background: #fff; border: 1px solid #ddd; padding: 30px; border-radius: 8px; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
	.product-card { border: 1px solid #ddd; border-radius: 8px; padding: 20px; margin-top: 20px; text-align: left; }
	h1 { color: #28a745; }
	a { color: #007bff; text-decoration: none; font-weight: bold; }
	.button { background-color: #007bff; color: white; padding: 15px 25px; border-radius: 8px; }
	input { padding: 10px; width: 250px; margin-bottom: 20px; border-radius: 5px; border: 1px solid #ccc; }
	button { padding: 10px 20px; background-color: #007bff; color: white; border: none; border-radius: 5px; cursor: pointer; }
</style>{{end}}

{{define "home_form"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Check Access</title>{{template "style"}}</head>
<body>
	<div class="container">
		<h1>Check Your Access</h1>
		<p>Please enter your email to see your purchases.</p>
		<form action="/" method="GET">
			<input type="email" name="email" placeholder="Enter your email" required />
			<br/>
			<button type="submit">Check Access</button>
		</form>
	</div>
</body>
</html>{{end}}

{{define "home_buy"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Buy Product</title>{{template "style"}}</head>
<body>
	<div class="container">
		<h1>Welcome, {{.Email}}!</h1>
		<p>You do not have any active products or subscriptions.</p>
		<a href="{{.CheckoutPath}}" class="button">Buy Product Now</a>
	</div>
</body>
</html>{{end}}

{{define "home_access"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Access Granted</title>{{template "style"}}</head>
<body>
	<div class="container">
		<h1>Welcome Back, {{.Email}}!</h1>
		<p>You have access to the following:</p>
		{{if .Subscription}}
		<div class="product-card">
			<h3>Active Subscription</h3>
			<p><strong>Product ID:</strong> {{.Subscription.ProductID}}</p>
			<p><strong>Status:</strong> {{.Subscription.Status}}</p>
			<p><strong>Next Billing Date:</strong> {{.Subscription.NextBillingDate.Format "Jan 2, 2006"}}</p>
		</div>
		{{end}}
		{{range .Products}}
		<div class="product-card">
			<h3>One-Time Purchase</h3>
			<p><strong>Product ID:</strong> {{.ProductID}}</p>
			<p><strong>Purchased On:</strong> {{.PurchasedAt.Format "Jan 2, 2006"}}</p>
		</div>
		{{end}}
	</div>
</body>
</html>{{end}}

{{define "success"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Payment Successful</title>{{template "style"}}</head>
<body>
	<div class="container">
		<h1>Thank You!</h1>
		{{if .Generic}}
		<p>Your purchase is being processed. Your access will be granted automatically in just a few moments.</p>
		{{else if .Subscription}}
		<p>Your subscription for Product ID <strong>{{.ProductID}}</strong> is now active!</p>
		{{else}}
		<p>Your purchase of Product ID <strong>{{.ProductID}}</strong> was successful!</p>
		{{end}}
		<p>A confirmation has been sent to <strong>{{.Email}}</strong>.</p>
		<br>
		<a href="/?email={{.Email}}" class="button">View My Access</a>
	</div>
</body>
</html>{{end}}

{{define "failure"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Payment Failed</title>{{template "style"}}</head>
<body>
	<div class="container">
		<h1 style="color: #dc3545;">Payment Not Successful</h1>
		<p>Your payment status is: <strong>{{.Status}}</strong>.</p>
		<p>Please check your email or contact support if you believe this is an error.</p>
		<a href="/">&larr; Back to Home</a>
	</div>
</body>
</html>{{end}}
`
