package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/edvin/shopadmin/internal/format"
	"github.com/edvin/shopadmin/internal/listing"
	"github.com/edvin/shopadmin/internal/model"
	"github.com/edvin/shopadmin/internal/shopctl"
)

var orderView = shopctl.View[model.Order]{
	Resource: "orders",
	Columns: []shopctl.Column[model.Order]{
		{Title: "ID", Value: func(o model.Order) string { return o.ID }},
		{Title: "NUMBER", Value: func(o model.Order) string { return o.Number }},
		{Title: "STATUS", Value: func(o model.Order) string { return o.Status }},
		{Title: "TOTAL", Value: func(o model.Order) string { return format.Money(o.Currency, o.TotalCents) }},
		{Title: "COUPON", Value: func(o model.Order) string { return optional(o.CouponCode) }},
		{Title: "CREATED", Value: func(o model.Order) string { return date(o.CreatedAt) }},
	},
}

var orderItemView = shopctl.View[model.OrderItem]{
	Resource: "order items",
	Columns: []shopctl.Column[model.OrderItem]{
		{Title: "ITEM", Value: func(i model.OrderItem) string { return i.Name }},
		{Title: "QTY", Value: func(i model.OrderItem) string { return strconv.Itoa(i.Quantity) }},
		{Title: "UNIT", Value: func(i model.OrderItem) string { return money(i.UnitPriceCents) }},
		{Title: "LINE", Value: func(i model.OrderItem) string { return money(i.UnitPriceCents * int64(i.Quantity)) }},
	},
}

var paymentView = shopctl.View[model.Payment]{
	Resource: "payments",
	Columns: []shopctl.Column[model.Payment]{
		{Title: "ID", Value: func(p model.Payment) string { return p.ID }},
		{Title: "ORDER", Value: func(p model.Payment) string { return p.OrderID }},
		{Title: "METHOD", Value: func(p model.Payment) string { return p.Method }},
		{Title: "AMOUNT", Value: func(p model.Payment) string { return format.Money(p.Currency, p.AmountCents) }},
		{Title: "STATUS", Value: func(p model.Payment) string { return p.Status }},
		{Title: "CREATED", Value: func(p model.Payment) string { return date(p.CreatedAt) }},
	},
}

var customerView = shopctl.View[model.Customer]{
	Resource: "customers",
	Columns: []shopctl.Column[model.Customer]{
		{Title: "ID", Value: func(c model.Customer) string { return c.ID }},
		{Title: "NAME", Value: func(c model.Customer) string { return c.Name }},
		{Title: "EMAIL", Value: func(c model.Customer) string { return c.Email }},
		{Title: "STATUS", Value: func(c model.Customer) string { return c.Status }},
		{Title: "ORDERS", Value: func(c model.Customer) string { return strconv.Itoa(c.OrderCount) }},
		{Title: "SPENT", Value: func(c model.Customer) string { return money(c.TotalSpentCents) }},
	},
}

var (
	orderCustomer string
	payMethod     string
	payOrder      string
	fromDate      string
	toDate        string
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Browse orders and move them through their lifecycle",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := listQuery()
		setIf(q, "customer_id", orderCustomer)
		setIf(q, "from", fromDate)
		setIf(q, "to", toDate)
		return listPage(cmd, orderView, "/orders", q)
	},
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an order with its line items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		var o model.Order
		if err := c.Get(cmd.Context(), "/orders/"+args[0], nil, &o); err != nil {
			return shopctl.FetchError("order", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Order %s (%s)\n", o.Number, o.ID)
		fmt.Fprintf(out, "  Customer: %s\n", o.CustomerID)
		fmt.Fprintf(out, "  Status:   %s\n", o.Status)
		fmt.Fprintf(out, "  Subtotal: %s\n", format.Money(o.Currency, o.SubtotalCents))
		fmt.Fprintf(out, "  Discount: %s\n", format.Money(o.Currency, o.DiscountCents))
		fmt.Fprintf(out, "  Total:    %s\n", format.Money(o.Currency, o.TotalCents))
		fmt.Fprintf(out, "  Coupon:   %s\n", optional(o.CouponCode))
		fmt.Fprintf(out, "  Created:  %s\n", date(o.CreatedAt))
		return orderItemView.Render(out, listing.Paginate(o.Items, 1, listing.MaxPageSize))
	},
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change an order's status",
	Long: `Change an order's status. Allowed transitions:
pending -> paid | cancelled, paid -> shipped | refunded | cancelled,
shipped -> delivered | refunded, delivered -> refunded.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		var o model.Order
		body := map[string]string{"status": args[1]}
		if err := c.Patch(cmd.Context(), "/orders/"+args[0]+"/status", body, &o); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Order %s is now %s\n", o.Number, o.Status)
		return nil
	},
}

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Browse and refund payments",
}

var paymentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payments",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := listQuery()
		setIf(q, "method", payMethod)
		setIf(q, "order_id", payOrder)
		setIf(q, "from", fromDate)
		setIf(q, "to", toDate)
		return listPage(cmd, paymentView, "/admin/payments", q)
	},
}

var paymentsRefundCmd = &cobra.Command{
	Use:   "refund <id>",
	Short: "Refund a succeeded payment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		var p model.Payment
		if err := c.Post(cmd.Context(), "/admin/payments/"+args[0]+"/refund", nil, &p); err != nil {
			return fmt.Errorf("refund payment: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Payment %s refunded (%s)\n", p.ID, format.Money(p.Currency, p.AmountCents))
		return nil
	},
}

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Browse customers and block or unblock them",
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listPage(cmd, customerView, "/customers", listQuery())
	},
}

func customerStatusCmd(use, short, newStatus string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			var cust model.Customer
			body := map[string]string{"status": newStatus}
			if err := c.Patch(cmd.Context(), "/customers/"+args[0], body, &cust); err != nil {
				return fmt.Errorf("%s customer: %w", use, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Customer %s is now %s\n", cust.Email, cust.Status)
			return nil
		},
	}
}

func init() {
	addListFlags(ordersListCmd)
	ordersListCmd.Flags().StringVar(&orderCustomer, "customer", "", "Filter by customer ID")
	ordersListCmd.Flags().StringVar(&fromDate, "from", "", "Created on or after (YYYY-MM-DD)")
	ordersListCmd.Flags().StringVar(&toDate, "to", "", "Created on or before (YYYY-MM-DD)")

	addListFlags(paymentsListCmd)
	paymentsListCmd.Flags().StringVar(&payMethod, "method", "", "Filter by method (card, paypal, bank_transfer, cod)")
	paymentsListCmd.Flags().StringVar(&payOrder, "order-id", "", "Filter by order ID")
	paymentsListCmd.Flags().StringVar(&fromDate, "from", "", "Created on or after (YYYY-MM-DD)")
	paymentsListCmd.Flags().StringVar(&toDate, "to", "", "Created on or before (YYYY-MM-DD)")

	addListFlags(customersListCmd)

	ordersCmd.AddCommand(ordersListCmd, ordersGetCmd, ordersStatusCmd)
	paymentsCmd.AddCommand(paymentsListCmd, paymentsRefundCmd)
	customersCmd.AddCommand(
		customersListCmd,
		customerStatusCmd("block", "Block a customer", model.CustomerBlocked),
		customerStatusCmd("unblock", "Unblock a customer", model.CustomerActive),
	)

	rootCmd.AddCommand(ordersCmd, paymentsCmd, customersCmd)
}
