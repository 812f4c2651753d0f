package googleads

// childCustomersQuery lists every non-closed customer reachable from the
// root customer, including the root itself at level 0.
const childCustomersQuery = `SELECT
  customer_client.client_customer,
  customer_client.id,
  customer_client.descriptive_name,
  customer_client.manager,
  customer_client.level,
  customer_client.currency_code,
  customer_client.time_zone,
  customer_client.status
FROM customer_client
WHERE customer_client.status != 'CLOSED'
ORDER BY customer_client.descriptive_name ASC`
