package entity

// Person is a card holder as listed in the people file.
type Person struct {
	ID           string `mapstructure:"id"`
	Name         string `mapstructure:"name"`
	Title        string `mapstructure:"title"`
	Phone        string `mapstructure:"phone"`
	Email        string `mapstructure:"email"`
	Address      string `mapstructure:"address"`
	Location     string `mapstructure:"location"`
	Website      string `mapstructure:"website"`
	ProfileImage string `mapstructure:"profile-image"`
	WhatsApp     string `mapstructure:"whatsapp"`
	WeChat       string `mapstructure:"wechat"`
	LinkedIn     string `mapstructure:"linkedin"`
	CalURL       string `mapstructure:"cal-url"`
	CalUsername  string `mapstructure:"cal-username"`
	Calendar     string `mapstructure:"calendar"`
}
