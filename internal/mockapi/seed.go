package mockapi

import "rhystmorgan/contactsTUI/internal/remote"

// SampleUsers mirrors the first entries of the public placeholder user list,
// phone extensions included.
func SampleUsers() []remote.ContactRecord {
	return []remote.ContactRecord{
		{ID: 1, Name: "Leanne Graham", Phone: "1-770-736-8031 x56442", Email: "Sincere@april.biz"},
		{ID: 2, Name: "Ervin Howell", Phone: "010-692-6593 x09125", Email: "Shanna@melissa.tv"},
		{ID: 3, Name: "Clementine Bauch", Phone: "1-463-123-4447", Email: "Nathan@yesenia.net"},
		{ID: 4, Name: "Patricia Lebsack", Phone: "493-170-9623 x156", Email: "Julianne.OConner@kory.org"},
		{ID: 5, Name: "Chelsey Dietrich", Phone: "(254)954-1289", Email: "Lucio_Hettinger@annie.ca"},
		{ID: 6, Name: "Mrs. Dennis Schulist", Phone: "1-477-935-8478 x6430", Email: "Karley_Dach@jasper.info"},
		{ID: 7, Name: "Kurtis Weissnat", Phone: "210.067.6132", Email: "Telly.Hoeger@billy.biz"},
		{ID: 8, Name: "Nicholas Runolfsdottir V", Phone: "586.493.6943 x140", Email: "Sherwood@rosamond.me"},
		{ID: 9, Name: "Glenna Reichert", Phone: "(775)976-6794 x41206", Email: "Chaim_McDermott@dana.io"},
		{ID: 10, Name: "Clementina DuBuque", Phone: "024-648-3804", Email: "Rey.Padberg@karina.biz"},
	}
}
