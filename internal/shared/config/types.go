package config

import "fmt"

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	// ShowSourceAll forces source location on every level instead of warn/error only.
	ShowSourceAll bool `mapstructure:"show_source_all"`
}

type EmailConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	AdminAddress string `mapstructure:"admin_address"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// QuotationConfig controls the quotation lifecycle timers.
type QuotationConfig struct {
	// ExpiryDays is how long a pending quotation stays open before it is expired.
	ExpiryDays int `mapstructure:"expiry_days"`
	// ReminderDelayHours is the delay between customer reminders for a pending quotation.
	ReminderDelayHours int `mapstructure:"reminder_delay_hours"`
	// SchedulerIntervalMinutes is the reminder/expiry scan interval.
	SchedulerIntervalMinutes int `mapstructure:"scheduler_interval_minutes"`
}

// PartConfig controls inventory behavior.
type PartConfig struct {
	// CustomerWarrantyDays is the warranty window stamped on a part sold through
	// an approved quotation.
	CustomerWarrantyDays int `mapstructure:"customer_warranty_days"`
	// LowStockThreshold is the available-stock level at or below which a low
	// stock alert is raised.
	LowStockThreshold int `mapstructure:"low_stock_threshold"`
	// AutoReplacementDays is the post-purchase window for automatic replacement
	// of an in-warranty device.
	AutoReplacementDays int `mapstructure:"auto_replacement_days"`
}
