package postgres

// QueryDimCustomers loads the whole customer dimension of the gold layer.
const QueryDimCustomers = `SELECT * FROM gold.dim_customers;`

// applicationName is reported to the server unless the DSN sets one.
const applicationName = "datafetch"
